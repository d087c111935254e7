package spclient

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCalendarID = "0f3bf3f4-7a3f-4e3b-a2a7-4f2dcd3e6d55"

func testCalendar(mock *mockHTTPClient) *Calendar {
	return NewClient(mock).GetCalendarByID(testCalendarID)
}

func TestCalendarExceptionsList(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{
			name:     "plain value array",
			response: `{"value":[{"Id":1,"Name":"Company holiday","Start":"2026-12-24T00:00:00Z","Finish":"2026-12-25T00:00:00Z"}]}`,
		},
		{
			name:     "verbose results array",
			response: `{"d":{"results":[{"Id":1,"Name":"Company holiday","Start":"2026-12-24T00:00:00Z","Finish":"2026-12-25T00:00:00Z"}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockHTTPClient{getResponse: json.RawMessage(tt.response)}
			exceptions, err := testCalendar(mock).Exceptions()
			require.NoError(t, err)
			require.Len(t, exceptions, 1)
			assert.Equal(t, 1, exceptions[0].ID)
			assert.Equal(t, "Company holiday", exceptions[0].Name)

			require.Len(t, mock.requests, 1)
			assert.Equal(t, "_api/ProjectServer/Calendars('"+testCalendarID+"')/Exceptions", mock.requests[0].path)
		})
	}
}

func TestGetCalendarExceptionByID(t *testing.T) {
	mock := &mockHTTPClient{getResponse: json.RawMessage(`{"Id":7,"Name":"Maintenance window"}`)}
	exception, err := testCalendar(mock).GetExceptionByID(7)
	require.NoError(t, err)
	assert.Equal(t, 7, exception.ID)
	assert.Contains(t, mock.requests[0].path, "Exceptions(7)")
}

func TestAddCalendarException(t *testing.T) {
	mock := &mockHTTPClient{postResponse: json.RawMessage(`{"d":{"Id":9,"Name":"Inventory day"}}`)}
	info := CalendarExceptionInfo{
		Name:   "Inventory day",
		Start:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Finish: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	}

	exception, err := testCalendar(mock).AddException(info)
	require.NoError(t, err)
	assert.Equal(t, 9, exception.ID)

	require.Len(t, mock.requests, 1)
	assert.Equal(t, "_api/ProjectServer/Calendars('"+testCalendarID+"')/Exceptions", mock.requests[0].path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(mock.requests[0].body, &sent))
	assert.Equal(t, "Inventory day", sent["Name"])
}

func TestUpdateCalendarExceptionSendsOnlySetFields(t *testing.T) {
	mock := &mockHTTPClient{postResponse: json.RawMessage(`{}`)}
	patch := CalendarExceptionPatch{
		Name:         mo.Some("Extended holiday"),
		Shift1Finish: mo.Some(0),
	}

	require.NoError(t, testCalendar(mock).UpdateException(3, patch))
	require.Len(t, mock.requests, 1)
	assert.Contains(t, mock.requests[0].path, "Exceptions(3)")
	assert.Equal(t, "MERGE", mock.requests[0].headers["X-HTTP-Method"])

	var sent map[string]any
	require.NoError(t, json.Unmarshal(mock.requests[0].body, &sent))
	// Zero values the caller set are sent; unset fields are not
	assert.Equal(t, map[string]any{"Name": "Extended holiday", "Shift1Finish": float64(0)}, sent)
}

func TestDeleteCalendarException(t *testing.T) {
	mock := &mockHTTPClient{}
	require.NoError(t, testCalendar(mock).DeleteException(3))
	require.Len(t, mock.requests, 1)
	assert.Equal(t, "DELETE", mock.requests[0].method)
	assert.Contains(t, mock.requests[0].path, "Exceptions(3)")
}
