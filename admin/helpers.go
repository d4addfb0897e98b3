package admin

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func mongoFindPage(skip, limit int64, sort bson.D) *options.FindOptions {
	return options.Find().
		SetSort(sort).
		SetSkip(skip).
		SetLimit(limit)
}
