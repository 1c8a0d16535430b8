package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkshopRequest_NewWorkshopIgnoresClientCreator(t *testing.T) {
	var req WorkshopRequest
	body := `{"eventTitle":"W1","createdBy":"mallory","category":["AI"],"editAccessUsers":["bob","alice"]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	now := time.Now()
	w := req.NewWorkshop("id-1", "alice", now)

	assert.Equal(t, "id-1", w.ID)
	assert.Equal(t, "W1", w.EventTitle)
	assert.Equal(t, "alice", w.CreatedBy)
	assert.Equal(t, []string{"alice", "bob"}, w.EditAccessUsers)
	assert.Equal(t, []string{"AI"}, w.Category)
	assert.Equal(t, now, w.CreatedAt)
}

func TestOwnerFirst(t *testing.T) {
	assert.Equal(t, []string{"alice"}, ownerFirst("alice", nil))
	assert.Equal(t, []string{"alice", "bob", "carol"}, ownerFirst("alice", []string{"bob", "alice", "carol"}))
}

func TestWorkshopPatch_ApplyIsShallowAndPartial(t *testing.T) {
	w := &Workshop{
		EventTitle:  "W1",
		EventStTime: "10am",
		Category:    []string{"AI", "ML"},
		Posters:     []string{"p1"},
		CreatedBy:   "alice",
	}
	before := *w

	var patch WorkshopPatch
	require.NoError(t, json.Unmarshal([]byte(`{"eventStTime":"2pm"}`), &patch))
	assert.True(t, patch.Apply(w))

	assert.Equal(t, "2pm", w.EventStTime)
	before.EventStTime = "2pm"
	assert.Equal(t, before, *w)
}

func TestWorkshopPatch_ReplacesWholeLists(t *testing.T) {
	w := &Workshop{Category: []string{"AI", "ML"}}
	cats := []string{"Web"}
	assert.True(t, WorkshopPatch{Category: &cats}.Apply(w))
	assert.Equal(t, []string{"Web"}, w.Category)
}

func TestWorkshopPatch_NoChange(t *testing.T) {
	w := &Workshop{EventStTime: "10am", Category: []string{"AI"}, CreatedBy: "alice", EventTitle: "W1"}

	var patch WorkshopPatch
	body := `{"eventStTime":"10am","category":["AI"],"createdBy":"mallory","eventTitle":"Other"}`
	require.NoError(t, json.Unmarshal([]byte(body), &patch))

	assert.False(t, patch.Apply(w))
	assert.Equal(t, "alice", w.CreatedBy)
	assert.Equal(t, "W1", w.EventTitle)
}
