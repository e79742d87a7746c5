package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhive/platform-api/internal/core/domain"
)

const collectionInvites = "invite_codes"

type InviteRepository struct {
	col *mongo.Collection
}

func NewInviteRepository(db *mongo.Database) *InviteRepository {
	return &InviteRepository{col: db.Collection(collectionInvites)}
}

type inviteDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Code      string             `bson:"code"`
	Role      string             `bson:"role"`
	Used      bool               `bson:"used"`
	UsedBy    string             `bson:"used_by,omitempty"`
	UsedAt    *int64             `bson:"used_at,omitempty"`
	ExpiresAt *int64             `bson:"expires_at,omitempty"`
	CreatedBy string             `bson:"created_by,omitempty"`
	CreatedAt int64              `bson:"created_at"`
}

func toInviteDoc(ic *domain.InviteCode) inviteDoc {
	doc := inviteDoc{
		Code:      ic.Code,
		Role:      ic.Role,
		Used:      ic.Used,
		UsedBy:    ic.UsedBy,
		CreatedBy: ic.CreatedBy,
		CreatedAt: ic.CreatedAt.Unix(),
	}
	if ic.UsedAt != nil {
		ts := ic.UsedAt.Unix()
		doc.UsedAt = &ts
	}
	if ic.ExpiresAt != nil {
		ts := ic.ExpiresAt.Unix()
		doc.ExpiresAt = &ts
	}
	return doc
}

func (d inviteDoc) toDomain() *domain.InviteCode {
	ic := &domain.InviteCode{
		ID:        d.ID.Hex(),
		Code:      d.Code,
		Role:      d.Role,
		Used:      d.Used,
		UsedBy:    d.UsedBy,
		CreatedBy: d.CreatedBy,
		CreatedAt: unixToTime(d.CreatedAt),
	}
	if d.UsedAt != nil {
		t := unixToTime(*d.UsedAt)
		ic.UsedAt = &t
	}
	if d.ExpiresAt != nil {
		t := unixToTime(*d.ExpiresAt)
		ic.ExpiresAt = &t
	}
	return ic
}

func (r *InviteRepository) Create(ctx context.Context, invite *domain.InviteCode) (*domain.InviteCode, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toInviteDoc(invite))
	if err != nil {
		return nil, fmt.Errorf("insert invite: %w", err)
	}

	created := *invite
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *InviteRepository) FindByCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc inviteDoc
	if err := r.col.FindOne(ctx, bson.M{"code": code}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInviteNotFound
		}
		return nil, fmt.Errorf("find invite: %w", err)
	}
	return doc.toDomain(), nil
}

// Consume flips the code to used in a single findAndModify. The filter
// requires the code to be unused, unexpired and targeting role, so a
// concurrent signup racing for the same code loses with ErrInvalidInviteCode.
func (r *InviteRepository) Consume(ctx context.Context, code, role, usedBy string) (*domain.InviteCode, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{
		"code": code,
		"role": role,
		"used": false,
		"$or": bson.A{
			bson.M{"expires_at": nil},
			bson.M{"expires_at": bson.M{"$gt": now.Unix()}},
		},
	}
	update := bson.M{"$set": bson.M{
		"used":    true,
		"used_by": usedBy,
		"used_at": now.Unix(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc inviteDoc
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("consume invite: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *InviteRepository) List(ctx context.Context) ([]*domain.InviteCode, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	defer cur.Close(ctx)

	var invites []*domain.InviteCode
	for cur.Next(ctx) {
		var doc inviteDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode invite: %w", err)
		}
		invites = append(invites, doc.toDomain())
	}
	return invites, cur.Err()
}

// UpdateExpiry rewrites the expiry of an unused invite. A nil expiresAt
// clears it, making the code never expire. Used codes are immutable.
func (r *InviteRepository) UpdateExpiry(ctx context.Context, id string, expiresAt *time.Time) (*domain.InviteCode, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInviteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$unset": bson.M{"expires_at": ""}}
	if expiresAt != nil {
		update = bson.M{"$set": bson.M{"expires_at": expiresAt.Unix()}}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc inviteDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid, "used": false}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			var existing inviteDoc
			if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err == nil {
				return nil, domain.ErrInviteCodeUsed
			}
			return nil, domain.ErrInviteNotFound
		}
		return nil, fmt.Errorf("update invite: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete removes an unused invite. Used codes are kept for audit.
func (r *InviteRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInviteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "used": false})
	if err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	if res.DeletedCount == 0 {
		var doc inviteDoc
		if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err == nil {
			return domain.ErrInviteCodeUsed
		}
		return domain.ErrInviteNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the invite_codes collection.
func (r *InviteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "used", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
