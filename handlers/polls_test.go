// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Bethune7436/N-private-poll-locker/auth"
	"github.com/Bethune7436/N-private-poll-locker/models"
	"github.com/Bethune7436/N-private-poll-locker/testutil"
)

func TestCreatePoll(t *testing.T) {
	eng, _ := testutil.NewTestEngine(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(eng, cfg)

	now := time.Now().Unix()

	tests := []struct {
		name           string
		requestBody    interface{}
		caller         string
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CreatePollResponse)
	}{
		{
			name: "valid poll creation",
			requestBody: models.CreatePollRequest{
				Title:     "Lunch spot",
				Options:   []string{"Tacos", "Ramen", "Pizza"},
				StartTime: now,
				EndTime:   now + 3600,
			},
			caller:         "alice",
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreatePollResponse) {
				if resp.PollID != 0 {
					t.Errorf("Expected first poll id 0, got %d", resp.PollID)
				}
			},
		},
		{
			name: "missing caller header",
			requestBody: models.CreatePollRequest{
				Title:     "Lunch spot",
				Options:   []string{"Tacos", "Ramen"},
				StartTime: now,
				EndTime:   now + 3600,
			},
			caller:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "missing title",
			requestBody: models.CreatePollRequest{
				Options:   []string{"Tacos", "Ramen"},
				StartTime: now,
				EndTime:   now + 3600,
			},
			caller:         "alice",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "single option",
			requestBody: models.CreatePollRequest{
				Title:     "Poll",
				Options:   []string{"Only"},
				StartTime: now,
				EndTime:   now + 3600,
			},
			caller:         "alice",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "inverted window",
			requestBody: models.CreatePollRequest{
				Title:     "Poll",
				Options:   []string{"A", "B"},
				StartTime: now + 3600,
				EndTime:   now,
			},
			caller:         "alice",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    nil,
			caller:         "alice",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.caller != "" {
				headers[auth.CallerHeader] = tt.caller
			}

			// A nil body decodes as EOF, standing in for malformed JSON.
			req := testutil.MakeRequest("POST", "/polls", tt.requestBody, headers)
			w := httptest.NewRecorder()

			handler.CreatePoll(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated && tt.checkResponse != nil {
				var resp models.CreatePollResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestGetPollCount(t *testing.T) {
	eng, _ := testutil.NewTestEngine(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(eng, cfg)

	now := time.Now().Unix()
	testutil.CreateTestPoll(t, eng, "alice", now, now+3600)
	testutil.CreateTestPoll(t, eng, "bob", now, now+3600)

	req := testutil.MakeRequest("GET", "/polls/count", nil, nil)
	w := httptest.NewRecorder()
	handler.GetPollCount(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PollCountResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Count != 2 {
		t.Errorf("Expected count 2, got %d", resp.Count)
	}
}

func TestGetPollInfo(t *testing.T) {
	eng, _ := testutil.NewTestEngine(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(eng, cfg)

	now := time.Now().Unix()
	pollID := testutil.CreateTestPoll(t, eng, "alice", now-10, now+3600)

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"existing poll", strconv.FormatInt(pollID, 10), http.StatusOK},
		{"unknown poll", "42", http.StatusNotFound},
		{"malformed id", "abc", http.StatusBadRequest},
		{"negative id", "-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/polls/"+tt.id, nil, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.GetPollInfo(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var poll models.Poll
				testutil.AssertJSON(t, w, &poll)
				if poll.Title != "Test Poll" {
					t.Errorf("Expected title 'Test Poll', got '%s'", poll.Title)
				}
				if poll.Phase != "active" {
					t.Errorf("Expected phase 'active', got '%s'", poll.Phase)
				}
				if len(poll.Options) != 3 {
					t.Errorf("Expected 3 options, got %d", len(poll.Options))
				}
			}
		})
	}
}

func TestGetPollCreator(t *testing.T) {
	eng, _ := testutil.NewTestEngine(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(eng, cfg)

	now := time.Now().Unix()
	pollID := testutil.CreateTestPoll(t, eng, "alice", now, now+3600)

	req := testutil.MakeRequest("GET", "/polls/0/creator", nil, nil)
	req.SetPathValue("id", strconv.FormatInt(pollID, 10))
	w := httptest.NewRecorder()
	handler.GetPollCreator(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PollCreatorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Creator != "alice" {
		t.Errorf("Expected creator 'alice', got '%s'", resp.Creator)
	}
}

func TestEmergencyPause(t *testing.T) {
	eng, _ := testutil.NewTestEngine(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(eng, cfg)

	now := time.Now().Unix()
	pollID := testutil.CreateTestPoll(t, eng, "alice", now-10, now+3600)
	idStr := strconv.FormatInt(pollID, 10)

	tests := []struct {
		name           string
		caller         string
		expectedStatus int
	}{
		{"missing caller", "", http.StatusUnauthorized},
		{"non-creator", "mallory", http.StatusForbidden},
		{"creator pauses", "alice", http.StatusOK},
		{"already finalized", "alice", http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.caller != "" {
				headers[auth.CallerHeader] = tt.caller
			}

			req := testutil.MakeRequest("POST", "/polls/"+idStr+"/pause", nil, headers)
			req.SetPathValue("id", idStr)
			w := httptest.NewRecorder()

			handler.EmergencyPause(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}
