package model

import "go.mongodb.org/mongo-driver/bson/primitive"

const UnprocessableMsgCollection = "unprocessable_messages"

// UnprocessableMessageDocument holds a parked queue message until it is
// replayed. Delivery tags restart with every channel, so Receipt is only
// informational and replays address documents by Id.
type UnprocessableMessageDocument struct {
	Id          primitive.ObjectID `bson:"_id,omitempty"`
	MessageBody string             `bson:"message_body"`
	Receipt     string             `bson:"receipt"`
	StoredAt    int64              `bson:"stored_at"`
}

func NewUnprocessableMessageDocument(messageBody, receipt string, storedAt int64) *UnprocessableMessageDocument {
	return &UnprocessableMessageDocument{
		MessageBody: messageBody,
		Receipt:     receipt,
		StoredAt:    storedAt,
	}
}
