package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clinic-stock-api/internal/infrastructure/ai"
)

func claudeServer(t *testing.T, status int, text string, captured *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"demasiadas solicitudes"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": text}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSuggestMedicationCategory_JSON(t *testing.T) {
	var body map[string]any
	srv := claudeServer(t, http.StatusOK, `{"category": "Antibiotics"}`, &body)
	svc := ai.NewAnthropicService("test-key", "claude-test").WithBaseURL(srv.URL)

	got, err := svc.SuggestMedicationCategory(context.Background(), "Amoxicilina 500mg", []string{"Antibiotics", "Vaccines"})
	require.NoError(t, err)
	assert.Equal(t, "Antibiotics", got)
	assert.Equal(t, "claude-test", body["model"])
	msgs := body["messages"].([]any)
	assert.Contains(t, msgs[0].(map[string]any)["content"], "Amoxicilina 500mg")
	assert.Contains(t, msgs[0].(map[string]any)["content"], "Antibiotics, Vaccines")
}

func TestSuggestMedicationCategory_Markdown(t *testing.T) {
	srv := claudeServer(t, http.StatusOK, "```json\n{\"category\": \" Vaccines \"}\n```", nil)
	svc := ai.NewAnthropicService("test-key", "m").WithBaseURL(srv.URL)

	got, err := svc.SuggestMedicationCategory(context.Background(), "BCG", []string{"Vaccines"})
	require.NoError(t, err)
	assert.Equal(t, "Vaccines", got)
}

func TestSuggestMedicationCategory_TextoPlano(t *testing.T) {
	srv := claudeServer(t, http.StatusOK, "Pain Medication\n", nil)
	svc := ai.NewAnthropicService("test-key", "m").WithBaseURL(srv.URL)

	got, err := svc.SuggestMedicationCategory(context.Background(), "Paracetamol", []string{"Pain Medication"})
	require.NoError(t, err)
	assert.Equal(t, "Pain Medication", got)
}

func TestSuggestMedicationCategory_ErrorAPI(t *testing.T) {
	srv := claudeServer(t, http.StatusTooManyRequests, "", nil)
	svc := ai.NewAnthropicService("test-key", "m").WithBaseURL(srv.URL)

	_, err := svc.SuggestMedicationCategory(context.Background(), "X", []string{"Other"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
}

func TestSuggestMedicationCategory_SinAPIKey(t *testing.T) {
	svc := ai.NewAnthropicService("", "m")
	_, err := svc.SuggestMedicationCategory(context.Background(), "X", nil)
	assert.Error(t, err)
}
