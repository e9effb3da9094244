package handler

import (
	"net/http"
	"testing"

	mailerapp "github.com/blindtest/backend/internal/application/mailer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raiseAlertWithDraft(t *testing.T, env *testEnv, adminToken, agentToken string) (uuid.UUID, uuid.UUID) {
	t.Helper()

	programID := createProgram(t, env, adminToken, "Programme Cashback")
	partnerID := createPartner(t, env, adminToken, "Initech", programID, "contact@initech.example.com")

	w := env.request(t, http.MethodPost, "/api/v1/alerts", agentToken, map[string]interface{}{
		"test_type":   "site",
		"description": "Cumul de codes promotionnels possible sur le tunnel de commande",
		"program_id":  programID,
		"partner_id":  partnerID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var alertResp struct {
		ID uuid.UUID `json:"id"`
	}
	decodeData(t, w, &alertResp)

	drafts := env.request(t, http.MethodGet, "/api/v1/alerts/"+alertResp.ID.String()+"/drafts", agentToken, nil)
	require.Equal(t, http.StatusOK, drafts.Code, drafts.Body.String())

	var draftList []struct {
		ID        uuid.UUID `json:"id"`
		Status    string    `json:"status"`
		Recipient string    `json:"recipient"`
	}
	decodeData(t, drafts, &draftList)
	require.Len(t, draftList, 1, "a draft should be composed when the alert opens")
	require.Equal(t, "draft", draftList[0].Status)
	require.Equal(t, "contact@initech.example.com", draftList[0].Recipient)

	return alertResp.ID, draftList[0].ID
}

func TestDraftSendFlow(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.createUser(t, "admin@example.com", "admin")
	_, agentToken := env.createUser(t, "agent@example.com", "agent")

	alertID, draftID := raiseAlertWithDraft(t, env, adminToken, agentToken)

	t.Run("draft can be edited before sending", func(t *testing.T) {
		w := env.request(t, http.MethodPut, "/api/v1/drafts/"+draftID.String(), agentToken, mailerapp.UpdateDraftRequest{
			Subject:   "Constat de non-conformité",
			Body:      "Bonjour,\n\nNous avons constaté un écart lors de notre dernier test.",
			Recipient: "contact@initech.example.com",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Subject string `json:"subject"`
		}
		decodeData(t, w, &resp)
		assert.Equal(t, "Constat de non-conformité", resp.Subject)
	})

	t.Run("send delivers the mail and resolves the alert", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/v1/drafts/"+draftID.String()+"/send", agentToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Status string  `json:"status"`
			SentAt *string `json:"sent_at"`
		}
		decodeData(t, w, &resp)
		assert.Equal(t, "sent", resp.Status)
		assert.NotNil(t, resp.SentAt)

		require.Len(t, env.sender.sent, 1)
		assert.Equal(t, "contact@initech.example.com", env.sender.sent[0].Recipient)

		alert := env.request(t, http.MethodGet, "/api/v1/alerts/"+alertID.String(), agentToken, nil)
		require.Equal(t, http.StatusOK, alert.Code)

		var alertResp struct {
			Status string `json:"status"`
		}
		decodeData(t, alert, &alertResp)
		assert.Equal(t, "resolved", alertResp.Status)
	})

	t.Run("send attempt is recorded in history", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/alerts/"+alertID.String()+"/email-history", agentToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var rows []struct {
			Outcome string `json:"outcome"`
			DraftID string `json:"draft_id"`
		}
		decodeData(t, w, &rows)
		require.Len(t, rows, 1)
		assert.Equal(t, "success", rows[0].Outcome)
		assert.Equal(t, draftID.String(), rows[0].DraftID)
	})

	t.Run("sent draft cannot be sent again", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/v1/drafts/"+draftID.String()+"/send", agentToken, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_STATE")
	})

	t.Run("sent draft cannot be deleted", func(t *testing.T) {
		w := env.request(t, http.MethodDelete, "/api/v1/drafts/"+draftID.String(), agentToken, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestDraftSendFailure(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.createUser(t, "admin@example.com", "admin")
	_, agentToken := env.createUser(t, "agent@example.com", "agent")

	alertID, draftID := raiseAlertWithDraft(t, env, adminToken, agentToken)

	env.sender.fail = true
	w := env.request(t, http.MethodPost, "/api/v1/drafts/"+draftID.String()+"/send", agentToken, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TRANSPORT_FAILURE")

	// The failed attempt leaves a history row and the alert stays open
	history := env.request(t, http.MethodGet, "/api/v1/alerts/"+alertID.String()+"/email-history", agentToken, nil)
	require.Equal(t, http.StatusOK, history.Code)

	var rows []struct {
		Outcome      string `json:"outcome"`
		ErrorMessage string `json:"error_message"`
	}
	decodeData(t, history, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "failed", rows[0].Outcome)
	assert.NotEmpty(t, rows[0].ErrorMessage)

	alert := env.request(t, http.MethodGet, "/api/v1/alerts/"+alertID.String(), agentToken, nil)
	var alertResp struct {
		Status string `json:"status"`
	}
	decodeData(t, alert, &alertResp)
	assert.Equal(t, "open", alertResp.Status)
}

func TestDraftSendWithSignature(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.createUser(t, "admin@example.com", "admin")
	_, agentToken := env.createUser(t, "agent@example.com", "agent")

	_, draftID := raiseAlertWithDraft(t, env, adminToken, agentToken)

	sig := env.request(t, http.MethodPost, "/api/v1/signatures", agentToken, mailerapp.SignatureRequest{
		Name:    "Equipe qualité",
		Content: "Cordialement,\nL'équipe qualité",
	})
	require.Equal(t, http.StatusCreated, sig.Code, sig.Body.String())

	var sigResp struct {
		ID uuid.UUID `json:"id"`
	}
	decodeData(t, sig, &sigResp)

	w := env.request(t, http.MethodPost, "/api/v1/drafts/"+draftID.String()+"/send", agentToken, mailerapp.SendDraftRequest{
		SignatureID: &sigResp.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Len(t, env.sender.sent, 1)
	assert.Contains(t, env.sender.sent[0].Body, "L'équipe qualité")
}
