package tenantstore

import (
	"context"
	"errors"
	"time"

	"turnero/pkg/clock"
	"turnero/pkg/config"
	apperrors "turnero/pkg/errors"
	"turnero/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "tenant_data"

type mongoStore struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoStore(cfg *config.Config) Store {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabase)
	return &mongoStore{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (s *mongoStore) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

// getOrCreate reads the tenant document, lazily creating an empty one the
// first time a tenant is touched.
func (s *mongoStore) getOrCreate(ctx context.Context, tenant string) (*model.TenantData, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": tenant}
	update := bson.M{"$setOnInsert": bson.M{
		"bookings":            []model.Booking{},
		"historical_bookings": []model.HistoricalBooking{},
		"blocked_slots":       []model.BlockedSlot{},
		"cancelled_days":      []model.CancelledDay{},
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var data model.TenantData
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&data); err != nil {
		return nil, apperrors.Storage("failed to read tenant document", err)
	}
	return &data, nil
}

func (s *mongoStore) ReadBookings(ctx context.Context, tenant string, professionalID int, date time.Time) ([]model.Booking, error) {
	data, err := s.getOrCreate(ctx, tenant)
	if err != nil {
		return nil, err
	}

	day := clock.DayOf(date)
	out := []model.Booking{}
	for _, b := range data.Bookings {
		if !clock.SameDay(b.Date, day) {
			continue
		}
		if professionalID > 0 && b.ProfessionalID != professionalID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *mongoStore) ReadAllBookings(ctx context.Context, tenant string) ([]model.Booking, error) {
	data, err := s.getOrCreate(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return data.Bookings, nil
}

func (s *mongoStore) AppendBooking(ctx context.Context, tenant string, b model.Booking) (model.Booking, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Date = clock.DayOf(b.Date)

	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": tenant}
	update := bson.M{"$push": bson.M{"bookings": b}}
	opts := options.Update().SetUpsert(true)

	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return model.Booking{}, apperrors.Storage("failed to append booking", err)
	}
	return b, nil
}

func (s *mongoStore) RemoveBooking(ctx context.Context, tenant, bookingID string) error {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": tenant}
	update := bson.M{"$pull": bson.M{"bookings": bson.M{"id": bookingID}}}

	if _, err := s.collection.UpdateOne(ctx, filter, update); err != nil {
		return apperrors.Storage("failed to remove booking", err)
	}
	return nil
}

func (s *mongoStore) ReadBlockedSlots(ctx context.Context, tenant string, date time.Time, professionalID int) ([]model.BlockedSlot, error) {
	data, err := s.getOrCreate(ctx, tenant)
	if err != nil {
		return nil, err
	}

	day := clock.DayOf(date)
	out := []model.BlockedSlot{}
	for _, bs := range data.BlockedSlots {
		if !clock.SameDay(bs.Date, day) {
			continue
		}
		if professionalID > 0 && bs.ProfessionalID != professionalID {
			continue
		}
		out = append(out, bs)
	}
	return out, nil
}

func (s *mongoStore) AppendBlockedSlot(ctx context.Context, tenant string, bs model.BlockedSlot) (model.BlockedSlot, error) {
	if bs.ID == "" {
		bs.ID = uuid.NewString()
	}
	bs.Date = clock.DayOf(bs.Date)

	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": tenant}
	update := bson.M{"$push": bson.M{"blocked_slots": bs}}
	opts := options.Update().SetUpsert(true)

	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return model.BlockedSlot{}, apperrors.Storage("failed to append blocked slot", err)
	}
	return bs, nil
}

func (s *mongoStore) RemoveBlockedSlot(ctx context.Context, tenant string, date time.Time, timeOfDay string, professionalID int) error {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": tenant}
	update := bson.M{"$pull": bson.M{"blocked_slots": bson.M{
		"date":            clock.DayOf(date),
		"time":            timeOfDay,
		"professional_id": professionalID,
	}}}

	if _, err := s.collection.UpdateOne(ctx, filter, update); err != nil {
		return apperrors.Storage("failed to remove blocked slot", err)
	}
	return nil
}

func (s *mongoStore) ReadCancelledDay(ctx context.Context, tenant string, date time.Time) (*model.CancelledDay, error) {
	data, err := s.getOrCreate(ctx, tenant)
	if err != nil {
		return nil, err
	}

	day := clock.DayOf(date)
	for _, cd := range data.CancelledDays {
		if clock.SameDay(cd.Date, day) {
			return &cd, nil
		}
	}
	return nil, nil
}

func (s *mongoStore) ListCancelledDays(ctx context.Context, tenant string, from time.Time) ([]model.CancelledDay, error) {
	data, err := s.getOrCreate(ctx, tenant)
	if err != nil {
		return nil, err
	}

	day := clock.DayOf(from)
	out := []model.CancelledDay{}
	for _, cd := range data.CancelledDays {
		if cd.Date.Before(day) {
			continue
		}
		out = append(out, cd)
	}
	return out, nil
}

func (s *mongoStore) AppendCancelledDay(ctx context.Context, tenant string, d model.CancelledDay) (model.CancelledDay, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.Date = clock.DayOf(d.Date)

	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": tenant}
	update := bson.M{"$push": bson.M{"cancelled_days": d}}
	opts := options.Update().SetUpsert(true)

	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return model.CancelledDay{}, apperrors.Storage("failed to append cancelled day", err)
	}
	return d, nil
}

func (s *mongoStore) RemoveCancelledDay(ctx context.Context, tenant string, date time.Time) error {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": tenant}
	update := bson.M{"$pull": bson.M{"cancelled_days": bson.M{"date": clock.DayOf(date)}}}

	if _, err := s.collection.UpdateOne(ctx, filter, update); err != nil {
		return apperrors.Storage("failed to remove cancelled day", err)
	}
	return nil
}

func (s *mongoStore) ReadBusinessHours(ctx context.Context, tenant string) (model.HoursConfig, error) {
	data, err := s.getOrCreate(ctx, tenant)
	if err != nil {
		return model.HoursConfig{}, err
	}
	return data.Hours, nil
}

func (s *mongoStore) SetBusinessHours(ctx context.Context, tenant string, h model.HoursConfig) error {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": tenant}
	update := bson.M{"$set": bson.M{"hours": h}}
	opts := options.Update().SetUpsert(true)

	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return apperrors.Storage("failed to set business hours", err)
	}
	return nil
}

func (s *mongoStore) AppendHistoricalBooking(ctx context.Context, tenant string, rec model.HistoricalBooking) error {
	// The document must exist before the guarded push: an upsert here
	// would race a filter miss into a duplicate-key insert.
	if _, err := s.getOrCreate(ctx, tenant); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	// Guarded push: matches only while the booking id is not yet archived,
	// so re-running an interrupted sweep cannot duplicate records.
	filter := bson.M{
		"_id":                    tenant,
		"historical_bookings.id": bson.M{"$ne": rec.ID},
	}
	update := bson.M{"$push": bson.M{"historical_bookings": rec}}

	_, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.Storage("failed to append historical booking", err)
	}
	return nil
}

func (s *mongoStore) ReadHistoricalBookings(ctx context.Context, tenant string) ([]model.HistoricalBooking, error) {
	data, err := s.getOrCreate(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return data.HistoricalBookings, nil
}
