package controller_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/spendly/backend/internal/domain/error"
)

func goalBody(name string, target float64) map[string]interface{} {
	return map[string]interface{}{"name": name, "targetAmount": target}
}

func TestGoal_CreateAndValidate(t *testing.T) {
	api := newTestAPI(t)

	status, resp := api.do(http.MethodPost, "/api/v1/goals", alice, map[string]interface{}{
		"name":         "Holiday",
		"targetAmount": 1000,
		"targetDate":   "2999-06-01",
		"color":        "#0af",
	})
	require.Equal(t, http.StatusCreated, status, resp)
	goal := object(t, resp, "goal")
	assert.Equal(t, "Holiday", goal["name"])
	assert.Equal(t, float64(1000), goal["targetAmount"])
	assert.Equal(t, float64(0), goal["savedAmount"])
	assert.Equal(t, "#0af", goal["color"])
	assert.NotNil(t, goal["targetDate"])

	tests := []struct {
		name    string
		body    interface{}
		status  int
		message string
	}{
		{"duplicate name", goalBody("holiday", 10), http.StatusConflict, domainerror.MsgGoalNameExists},
		{"zero target", goalBody("Car", 0), http.StatusBadRequest, "Target amount must be a positive number"},
		{"string target", `{"name":"Car","targetAmount":"100"}`, http.StatusBadRequest, "Target amount must be a positive number"},
		{"past target date", map[string]interface{}{"name": "Car", "targetAmount": 10, "targetDate": "2001-01-01"}, http.StatusBadRequest, "Target Date must be a valid date and in the future."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := api.do(http.MethodPost, "/api/v1/goals", alice, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, resp["error"])
			assert.Nil(t, resp["goal"])
		})
	}

	// Goal names are scoped to their owner
	status, _ = api.do(http.MethodPost, "/api/v1/goals", bob, goalBody("Holiday", 10))
	assert.Equal(t, http.StatusCreated, status)
}

func TestGoal_GetUpdateAndOwnership(t *testing.T) {
	api := newTestAPI(t)
	id := api.create("/api/v1/goals", alice, "goal", goalBody("Bike", 500))

	status, resp := api.do(http.MethodGet, "/api/v1/goals?id="+id, alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Bike", object(t, resp, "goal")["name"])

	status, _ = api.do(http.MethodGet, "/api/v1/goals?id="+id, bob, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.do(http.MethodPut, "/api/v1/goals?id="+id, bob, map[string]interface{}{"targetAmount": 1})
	assert.Equal(t, http.StatusForbidden, status)

	status, resp = api.do(http.MethodPut, "/api/v1/goals?id="+id, alice, map[string]interface{}{"targetAmount": 750, "name": "E-bike"})
	require.Equal(t, http.StatusOK, status, resp)
	goal := object(t, resp, "goal")
	assert.Equal(t, float64(750), goal["targetAmount"])
	assert.Equal(t, "E-bike", goal["name"])

	for body, message := range map[string]string{
		`{"targetAmount":null}`: "Target amount must be a positive number",
		`{"targetDate":null}`:   "Target Date must be a valid date and in the future.",
		`{"name":null}`:         "Name must be a non-empty string",
	} {
		status, resp = api.do(http.MethodPut, "/api/v1/goals?id="+id, alice, body)
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.Equal(t, message, resp["error"], body)
	}

	_, resp = api.do(http.MethodGet, "/api/v1/goals?id="+id, alice, nil)
	assert.Equal(t, float64(750), object(t, resp, "goal")["targetAmount"])

	status, resp = api.do(http.MethodGet, "/api/v1/goals?id=not-a-uuid", alice, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid goal ID format", resp["error"])
}

func TestGoal_ListIsOwnerScoped(t *testing.T) {
	api := newTestAPI(t)
	api.create("/api/v1/goals", alice, "goal", goalBody("Bike", 500))
	api.create("/api/v1/goals", alice, "goal", goalBody("Car", 5000))
	api.create("/api/v1/goals", bob, "goal", goalBody("Boat", 50000))

	status, resp := api.do(http.MethodGet, "/api/v1/goals", alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list(t, resp, "goals"), 2)
	assert.EqualValues(t, 2, resp["totalCount"])
}

func TestGoal_ContributionsAccumulate(t *testing.T) {
	api := newTestAPI(t)
	id := api.create("/api/v1/goals", alice, "goal", goalBody("Emergency fund", 100))
	path := "/api/v1/goals/contributions/" + id

	status, resp := api.do(http.MethodPost, path, alice, map[string]interface{}{"amount": 50, "description": "First"})
	require.Equal(t, http.StatusCreated, status, resp)
	assert.Equal(t, float64(50), object(t, resp, "goal")["savedAmount"])
	assert.Equal(t, "First", object(t, resp, "contribution")["description"])

	status, resp = api.do(http.MethodPost, path, alice, map[string]interface{}{"amount": 50})
	require.Equal(t, http.StatusCreated, status, resp)
	goal := object(t, resp, "goal")
	assert.Equal(t, float64(100), goal["savedAmount"])
	assert.Equal(t, true, goal["isReached"])

	status, resp = api.do(http.MethodGet, path, alice, nil)
	require.Equal(t, http.StatusOK, status)
	contributions := list(t, resp, "contributions")
	require.Len(t, contributions, 2)
	var sum float64
	for _, c := range contributions {
		sum += c.(map[string]interface{})["amount"].(float64)
	}
	assert.Equal(t, float64(100), sum)

	// Reaching the target queues exactly one email, delivered by the worker
	require.NotNil(t, api.injector.EmailWorker)
	api.injector.EmailWorker.ProcessNow(context.Background())
	require.Len(t, api.sender.SentEmails, 1)
	assert.Equal(t, "alice@example.com", api.sender.SentEmails[0].To)
	assert.Contains(t, api.sender.SentEmails[0].Subject, "Emergency fund")
}

func TestGoal_ContributionValidationAndOwnership(t *testing.T) {
	api := newTestAPI(t)
	id := api.create("/api/v1/goals", alice, "goal", goalBody("Bike", 500))
	path := "/api/v1/goals/contributions/" + id

	for _, body := range []interface{}{
		map[string]interface{}{"amount": 0},
		map[string]interface{}{"amount": -10},
		`{"amount":"10"}`,
		map[string]interface{}{},
	} {
		status, resp := api.do(http.MethodPost, path, alice, body)
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.Equal(t, "Amount must be a positive number", resp["error"])
	}

	status, _ := api.do(http.MethodPost, path, bob, map[string]interface{}{"amount": 10})
	assert.Equal(t, http.StatusForbidden, status)

	status, resp := api.do(http.MethodGet, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Empty(t, list(t, resp, "contributions"))

	assert.Zero(t, api.count("goal_contributions"))

	_, resp = api.do(http.MethodGet, "/api/v1/goals?id="+id, alice, nil)
	assert.Equal(t, float64(0), object(t, resp, "goal")["savedAmount"])
}

func TestGoal_DeleteRemovesContributions(t *testing.T) {
	api := newTestAPI(t)
	id := api.create("/api/v1/goals", alice, "goal", goalBody("Bike", 500))
	api.create("/api/v1/goals/contributions/"+id, alice, "contribution", map[string]interface{}{"amount": 25})

	status, _ := api.do(http.MethodDelete, "/api/v1/goals?id="+id, bob, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, resp := api.do(http.MethodDelete, "/api/v1/goals?id="+id, alice, nil)
	require.Equal(t, http.StatusOK, status, resp)
	assert.Equal(t, id, object(t, resp, "goal")["id"])
	assert.Zero(t, api.count("goal_contributions"))

	status, _ = api.do(http.MethodDelete, "/api/v1/goals?id="+id, alice, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = api.do(http.MethodGet, "/api/v1/goals?id="+id, alice, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
