package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Analysis input types.
const (
	AnalysisTypeText  = "text"
	AnalysisTypeImage = "image"
)

// Analysis is one stored coaching result: the user's input, the derived
// context, and the generated suggestions. Records are immutable after insert.
type Analysis struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"user_id" json:"user_id"`
	Type             string             `bson:"type" json:"type"`
	ConversationText string             `bson:"conversation_text,omitempty" json:"conversation_text,omitempty"`
	ImageBase64      string             `bson:"image_base64,omitempty" json:"image_base64,omitempty"`
	ImageContext     string             `bson:"image_context,omitempty" json:"image_context,omitempty"`
	UserContext      string             `bson:"user_context,omitempty" json:"user_context,omitempty"`
	Tone             string             `bson:"tone" json:"tone"`
	Goal             string             `bson:"goal" json:"goal"`
	AnalysisText     string             `bson:"analysis" json:"analysis"`
	Suggestions      []string           `bson:"suggestions" json:"suggestions"`
	RawResponse      string             `bson:"raw_response" json:"raw_response"`
	PlanTier         PlanTier           `bson:"plan_tier" json:"plan_tier"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}
