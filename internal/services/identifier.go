package services

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conventional alternate identifier fields, matched in order. Both camel
// and snake case spellings are covered because stored documents may use
// either convention.
var alternateIDFields = []string{
	"sessionId", "session_id",
	"userId", "user_id",
	"chatId", "chat_id",
}

// identifierFilter resolves a free-form identifier into a predicate. When
// the value parses as an ObjectID the native _id branch is included;
// the alternate-field branches always apply, so lookups work on documents
// keyed by session, user or chat identifiers as well.
//
// The same filter must be reused for the follow-up read after an update
// or delete so the returned document matches what was mutated.
func identifierFilter(id string) bson.M {
	or := make([]bson.M, 0, len(alternateIDFields)+1)

	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		or = append(or, bson.M{"_id": oid})
	}

	for _, field := range alternateIDFields {
		or = append(or, bson.M{field: id})
	}

	return bson.M{"$or": or}
}

// bulkDeleteFilter partitions ids into ObjectID-encodable values and
// opaque strings. A value that parses as an ObjectID is matched only via
// the _id branch, never duplicated into the string branches.
func bulkDeleteFilter(ids []string) bson.M {
	var objectIDs []primitive.ObjectID
	var opaque []string

	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			objectIDs = append(objectIDs, oid)
		} else {
			opaque = append(opaque, id)
		}
	}

	var or []bson.M
	if len(objectIDs) > 0 {
		or = append(or, bson.M{"_id": bson.M{"$in": objectIDs}})
	}
	if len(opaque) > 0 {
		for _, field := range alternateIDFields {
			or = append(or, bson.M{field: bson.M{"$in": opaque}})
		}
	}

	return bson.M{"$or": or}
}
