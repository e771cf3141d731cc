package db

import (
	"context"
	"log"

	"fieldops/globals"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection       *mongo.Collection
	StoresCollection     *mongo.Collection
	ActivitiesCollection *mongo.Collection
	WorkPlansCollection  *mongo.Collection
	SchedulesCollection  *mongo.Collection
	TemplatesCollection  *mongo.Collection
	Client               *mongo.Client
)

// Initialize MongoDB connection
func init() {
	uri := globals.EnvOr("MONGO_URI", "mongodb://localhost:27017")

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database(globals.EnvOr("MONGO_DB", "fieldopsdb"))
	UserCollection = database.Collection("users")
	StoresCollection = database.Collection("stores")
	ActivitiesCollection = database.Collection("activities")
	WorkPlansCollection = database.Collection("workplans")
	SchedulesCollection = database.Collection("schedules")
	TemplatesCollection = database.Collection("plantemplates")
}
