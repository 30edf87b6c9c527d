package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestValidate_FieldPriority(t *testing.T) {
	tests := []struct {
		name      string
		req       NewMessageRequest
		wantField string
	}{
		{"all empty", NewMessageRequest{}, "username"},
		{"only title set", NewMessageRequest{Title: "t"}, "username"},
		{"only description set", NewMessageRequest{Description: "d"}, "username"},
		{"username set", NewMessageRequest{Username: "alice"}, "title"},
		{"username and title set", NewMessageRequest{Username: "alice", Title: "t"}, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var mfe *MissingFieldError
			if !errors.As(err, &mfe) {
				t.Fatalf("error type = %T, want *MissingFieldError", err)
			}
			if mfe.Field != tt.wantField {
				t.Errorf("field = %q, want %q", mfe.Field, tt.wantField)
			}
		})
	}
}

func TestValidate_AllFieldsPresent(t *testing.T) {
	req := NewMessageRequest{Title: "Hi", Description: "desc", Username: "alice"}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewMessage_AssignsIdentity(t *testing.T) {
	req := NewMessageRequest{Title: "Hi", Description: "desc", Username: "alice"}

	before := time.Now().UnixMilli()
	msg := NewMessage(req)
	after := time.Now().UnixMilli()

	if msg.ID == "" {
		t.Fatal("ID not assigned")
	}
	if msg.Title != "Hi" || msg.Description != "desc" || msg.Author != "alice" {
		t.Errorf("fields not carried over: %+v", msg)
	}
	if msg.CreatedAt < before || msg.CreatedAt > after {
		t.Errorf("CreatedAt = %d, want within [%d, %d]", msg.CreatedAt, before, after)
	}
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	req := NewMessageRequest{Title: "t", Description: "d", Username: "u"}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := NewMessage(req)
		if seen[msg.ID] {
			t.Fatalf("duplicate ID after %d messages: %s", i, msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestMessage_JSONShape(t *testing.T) {
	msg := Message{
		ID:          "abc-123",
		Title:       "Hi",
		Description: "desc",
		Author:      "alice",
		CreatedAt:   1700000000000,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "title", "description", "username", "createdAt"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("serialized message missing key %q", key)
		}
	}
	if decoded["username"] != "alice" {
		t.Errorf("username = %v, want alice", decoded["username"])
	}
}
