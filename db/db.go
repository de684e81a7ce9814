package db

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client

	BookingsCollection     *mongo.Collection
	RoomStatusCollection   *mongo.Collection
	CustomRoomsCollection  *mongo.Collection
	BookingDatesCollection *mongo.Collection
	SettingsCollection     *mongo.Collection
	UserCollection         *mongo.Collection
)

// Init connects to MongoDB and wires up the collection handles.
func Init(ctx context.Context) error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	Client = client

	database := client.Database("silpadb")
	BookingsCollection = database.Collection("bookings")
	RoomStatusCollection = database.Collection("roomstatus")
	CustomRoomsCollection = database.Collection("customrooms")
	BookingDatesCollection = database.Collection("bookingdates")
	SettingsCollection = database.Collection("settings")
	UserCollection = database.Collection("users")

	return nil
}

// EnsureIndexes creates the indexes the ledger relies on. The unique compound
// index on (roomid, date, slot) is the backstop for the check-then-insert
// sequence in Reserve: two racing requests cannot both land a booking for the
// same slot.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := BookingsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "roomid", Value: 1},
			{Key: "date", Value: 1},
			{Key: "slot", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = CustomRoomsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "roomid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = BookingDatesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}},
	})
	return err
}
