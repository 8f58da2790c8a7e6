package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/23himanshusingh/AnimeGpt/internal/db"
	"github.com/23himanshusingh/AnimeGpt/internal/models"
)

// WatchlistRepository keeps one document per user with the entries embedded.
type WatchlistRepository struct {
	col *mongo.Collection
}

func NewWatchlistRepository(database *mongo.Database) *WatchlistRepository {
	return &WatchlistRepository{col: database.Collection(db.WatchlistsCollection)}
}

// Get returns the user's entries; a user without a watchlist gets an empty slice.
func (r *WatchlistRepository) Get(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	var doc models.WatchlistDoc
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []models.WatchlistEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Anime == nil {
		doc.Anime = []models.WatchlistEntry{}
	}
	return doc.Anime, nil
}

// Add appends entry, creating the watchlist on first use. The filter only
// matches while the anime is absent, so a duplicate falls through to the
// upsert and hits the unique userId index.
func (r *WatchlistRepository) Add(ctx context.Context, userID string, entry models.WatchlistEntry) ([]models.WatchlistEntry, error) {
	filter := bson.M{
		"userId":       userID,
		"anime.mal_id": bson.M{"$ne": entry.ID},
	}
	update := bson.M{
		"$push": bson.M{"anime": entry},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc models.WatchlistDoc
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return doc.Anime, nil
}

// Update changes status and/or rating of one entry and returns it.
func (r *WatchlistRepository) Update(ctx context.Context, userID string, malID int, upd models.WatchlistUpdate) (*models.WatchlistEntry, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Status != nil {
		set["anime.$.status"] = *upd.Status
	}
	if upd.UserRating != nil {
		set["anime.$.userRating"] = *upd.UserRating
	}

	var doc models.WatchlistDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"userId": userID, "anime.mal_id": malID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	for i := range doc.Anime {
		if doc.Anime[i].ID == malID {
			return &doc.Anime[i], nil
		}
	}
	return nil, ErrNotFound
}

// Remove pulls the anime and returns what is left. Removing an anime that
// is not in the list is not an error; a missing watchlist is.
func (r *WatchlistRepository) Remove(ctx context.Context, userID string, malID int) ([]models.WatchlistEntry, error) {
	var doc models.WatchlistDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$pull": bson.M{"anime": bson.M{"mal_id": malID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if doc.Anime == nil {
		doc.Anime = []models.WatchlistEntry{}
	}
	return doc.Anime, nil
}
