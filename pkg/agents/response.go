package agents

import (
	"time"

	"github.com/advisorhub/mira/pkg/models"
)

const defaultConfidence = 0.75

// ResponseOption adjusts the metadata of a built response.
type ResponseOption func(*models.MiraResponse)

// WithSubtopic sets the metadata subtopic.
func WithSubtopic(subtopic string) ResponseOption {
	return func(r *models.MiraResponse) {
		r.Metadata.Subtopic = subtopic
	}
}

// WithConfidence overrides the default routing confidence.
func WithConfidence(confidence float64) ResponseOption {
	return func(r *models.MiraResponse) {
		r.Metadata.Confidence = confidence
	}
}

// BuildResponse assembles the reply envelope every agent returns. The
// topic mirrors the context module and the trace records where the reply
// was generated from.
func BuildResponse(agentID, intent string, mctx models.MiraContext, reply string, actions []models.UIAction, opts ...ResponseOption) *models.MiraResponse {
	if actions == nil {
		actions = []models.UIAction{}
	}

	response := &models.MiraResponse{
		AssistantReply: reply,
		UIActions:      actions,
		Metadata: models.ResponseMetadata{
			Topic:      string(mctx.Module),
			Intent:     intent,
			Confidence: defaultConfidence,
			Agent:      agentID,
		},
		Trace: models.ResponseTrace{
			GeneratedAt: time.Now().UTC(),
			Module:      mctx.Module,
			Page:        mctx.Page,
		},
	}

	for _, opt := range opts {
		opt(response)
	}

	return response
}
