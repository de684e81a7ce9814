package bookings

import (
	"context"
	"errors"
	"time"

	"silpa/catalog"
	"silpa/db"
	"silpa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store-level sentinels. The ledger translates these into the error taxonomy.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Store is the document-store contract the ledger runs on. The production
// implementation is MongoStore; tests use an in-memory store that enforces
// the same (roomid, date, slot) uniqueness the Mongo index does.
type Store interface {
	InsertBookings(ctx context.Context, bs []models.Booking) error
	BookingByID(ctx context.Context, id string) (*models.Booking, error)
	BookingExists(ctx context.Context, roomID string, date time.Time, slot string) (bool, error)
	BookingsByDate(ctx context.Context, day time.Time) ([]models.Booking, error)
	AllBookings(ctx context.Context) ([]models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	DeleteBookingsByRoomDate(ctx context.Context, roomID string, day time.Time) (int64, error)
	DeleteBookingsByRoom(ctx context.Context, roomID string) (int64, error)
	DeleteAllBookings(ctx context.Context) (int64, error)
	SetBookingDetails(ctx context.Context, id, details string) (*models.Booking, error)

	RoomStatus(ctx context.Context) (*models.RoomStatus, error)
	SetClosedRooms(ctx context.Context, closed []string) error

	CustomRooms(ctx context.Context) ([]models.CustomRoom, error)
	CustomRoomByID(ctx context.Context, roomID string) (*models.CustomRoom, error)
	InsertCustomRoom(ctx context.Context, room models.CustomRoom) error
	DeleteCustomRoom(ctx context.Context, roomID string) error

	ActiveDates(ctx context.Context) ([]models.BookingDate, error)
	ActiveDate(ctx context.Context, date string) (*models.BookingDate, error)
	InsertDate(ctx context.Context, d models.BookingDate) error
	DeactivateDate(ctx context.Context, date string) error

	Settings(ctx context.Context) (*models.AppSettings, error)
	SaveSettings(ctx context.Context, s models.AppSettings) error

	UserByID(ctx context.Context, id string) (*models.User, error)
	UsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
}

// MongoStore runs the ledger against the shared collections in db.
type MongoStore struct{}

var _ Store = (*MongoStore)(nil)

func NewMongoStore() *MongoStore { return &MongoStore{} }

func dayRange(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func (s *MongoStore) InsertBookings(ctx context.Context, bs []models.Booking) error {
	docs := make([]interface{}, len(bs))
	for i, b := range bs {
		docs[i] = b
	}
	_, err := db.BookingsCollection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *MongoStore) BookingByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *MongoStore) BookingExists(ctx context.Context, roomID string, date time.Time, slot string) (bool, error) {
	count, err := db.BookingsCollection.CountDocuments(ctx, bson.M{
		"roomid": roomID,
		"date":   date,
		"slot":   slot,
	})
	return count > 0, err
}

func (s *MongoStore) BookingsByDate(ctx context.Context, day time.Time) ([]models.Booking, error) {
	start, end := dayRange(day)
	cursor, err := db.BookingsCollection.Find(ctx, bson.M{
		"date": bson.M{"$gte": start, "$lt": end},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Booking
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) AllBookings(ctx context.Context) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "roomid", Value: 1},
		{Key: "slot", Value: 1},
	})
	cursor, err := db.BookingsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Booking
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) DeleteBooking(ctx context.Context, id string) error {
	res, err := db.BookingsCollection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteBookingsByRoomDate(ctx context.Context, roomID string, day time.Time) (int64, error) {
	start, end := dayRange(day)
	res, err := db.BookingsCollection.DeleteMany(ctx, bson.M{
		"roomid": roomID,
		"date":   bson.M{"$gte": start, "$lt": end},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) DeleteBookingsByRoom(ctx context.Context, roomID string) (int64, error) {
	res, err := db.BookingsCollection.DeleteMany(ctx, bson.M{"roomid": roomID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) DeleteAllBookings(ctx context.Context) (int64, error) {
	res, err := db.BookingsCollection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) SetBookingDetails(ctx context.Context, id, details string) (*models.Booking, error) {
	var b models.Booking
	err := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"details": details}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// RoomStatus fetches the singleton status record, creating it seeded with
// the catalog's default-closed list on first access. The upsert keeps two
// racing first requests from creating two singletons.
func (s *MongoStore) RoomStatus(ctx context.Context) (*models.RoomStatus, error) {
	var status models.RoomStatus
	err := db.RoomStatusCollection.FindOneAndUpdate(ctx,
		bson.M{},
		bson.M{"$setOnInsert": bson.M{
			"closedrooms": catalog.DefaultClosedRooms(),
			"updatedat":   time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *MongoStore) SetClosedRooms(ctx context.Context, closed []string) error {
	_, err := db.RoomStatusCollection.UpdateOne(ctx,
		bson.M{},
		bson.M{"$set": bson.M{"closedrooms": closed, "updatedat": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) CustomRooms(ctx context.Context) ([]models.CustomRoom, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: 1}})
	cursor, err := db.CustomRoomsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.CustomRoom
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) CustomRoomByID(ctx context.Context, roomID string) (*models.CustomRoom, error) {
	var room models.CustomRoom
	err := db.CustomRoomsCollection.FindOne(ctx, bson.M{"roomid": roomID}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *MongoStore) InsertCustomRoom(ctx context.Context, room models.CustomRoom) error {
	_, err := db.CustomRoomsCollection.InsertOne(ctx, room)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *MongoStore) DeleteCustomRoom(ctx context.Context, roomID string) error {
	res, err := db.CustomRoomsCollection.DeleteOne(ctx, bson.M{"roomid": roomID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ActiveDates(ctx context.Context) ([]models.BookingDate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := db.BookingDatesCollection.Find(ctx, bson.M{"isactive": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.BookingDate
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) ActiveDate(ctx context.Context, date string) (*models.BookingDate, error) {
	var d models.BookingDate
	err := db.BookingDatesCollection.FindOne(ctx, bson.M{"date": date, "isactive": true}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *MongoStore) InsertDate(ctx context.Context, d models.BookingDate) error {
	_, err := db.BookingDatesCollection.InsertOne(ctx, d)
	return err
}

func (s *MongoStore) DeactivateDate(ctx context.Context, date string) error {
	res, err := db.BookingDatesCollection.UpdateOne(ctx,
		bson.M{"date": date, "isactive": true},
		bson.M{"$set": bson.M{"isactive": false}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Settings(ctx context.Context) (*models.AppSettings, error) {
	var settings models.AppSettings
	err := db.SettingsCollection.FindOneAndUpdate(ctx,
		bson.M{},
		bson.M{"$setOnInsert": bson.M{"contestname": DefaultContestName}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&settings)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *MongoStore) SaveSettings(ctx context.Context, settings models.AppSettings) error {
	_, err := db.SettingsCollection.UpdateOne(ctx,
		bson.M{},
		bson.M{"$set": settings},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoStore) UsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := db.UserCollection.Find(ctx, bson.M{"userid": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.UserID] = u
	}
	return out, nil
}
