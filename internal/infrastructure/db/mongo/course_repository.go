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

	"github.com/coursehub/course-marketplace/internal/core/domain"
	"github.com/coursehub/course-marketplace/internal/core/ports"
)

const coursesCollection = "courses"

// CourseRepository implements ports.CourseRepository on MongoDB. Enrollment
// and rating writes are conditional single-document updates so concurrent
// requests against the same course cannot produce duplicate members or
// duplicate ratings.
type CourseRepository struct {
	coll *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{coll: db.Collection(coursesCollection)}
}

type mongoContentItem struct {
	Title       string  `bson:"title"`
	Description string  `bson:"description,omitempty"`
	VideoURL    string  `bson:"video_url,omitempty"`
	Duration    float64 `bson:"duration,omitempty"`
}

type mongoRating struct {
	UserID    string    `bson:"user_id"`
	Value     int       `bson:"rating"`
	Review    string    `bson:"review,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

type mongoCourse struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Title            string             `bson:"title"`
	Description      string             `bson:"description"`
	InstructorID     string             `bson:"instructor_id"`
	Price            float64            `bson:"price"`
	Image            string             `bson:"image,omitempty"`
	Category         string             `bson:"category"`
	Level            string             `bson:"level"`
	Content          []mongoContentItem `bson:"content,omitempty"`
	EnrolledStudents []string           `bson:"enrolled_students"`
	Ratings          []mongoRating      `bson:"ratings"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func toCourseDoc(c *domain.Course) mongoCourse {
	content := make([]mongoContentItem, len(c.Content))
	for i, item := range c.Content {
		content[i] = mongoContentItem(item)
	}
	ratings := make([]mongoRating, len(c.Ratings))
	for i, r := range c.Ratings {
		ratings[i] = mongoRating(r)
	}
	return mongoCourse{
		Title:            c.Title,
		Description:      c.Description,
		InstructorID:     c.InstructorID,
		Price:            c.Price,
		Image:            c.Image,
		Category:         c.Category,
		Level:            string(c.Level),
		Content:          content,
		EnrolledStudents: c.EnrolledStudents,
		Ratings:          ratings,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (mc *mongoCourse) toDomain() *domain.Course {
	content := make([]domain.ContentItem, len(mc.Content))
	for i, item := range mc.Content {
		content[i] = domain.ContentItem(item)
	}
	ratings := make([]domain.Rating, len(mc.Ratings))
	for i, r := range mc.Ratings {
		ratings[i] = domain.Rating(r)
	}
	enrolled := mc.EnrolledStudents
	if enrolled == nil {
		enrolled = []string{}
	}
	return &domain.Course{
		ID:               mc.ID.Hex(),
		Title:            mc.Title,
		Description:      mc.Description,
		InstructorID:     mc.InstructorID,
		Price:            mc.Price,
		Image:            mc.Image,
		Category:         mc.Category,
		Level:            domain.Level(mc.Level),
		Content:          content,
		EnrolledStudents: enrolled,
		Ratings:          ratings,
		CreatedAt:        mc.CreatedAt,
		UpdatedAt:        mc.UpdatedAt,
	}
}

func (r *CourseRepository) Insert(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	res, err := r.coll.InsertOne(ctx, toCourseDoc(c))
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}
	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	var mc mongoCourse
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Course, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*domain.Course{}, nil
	}
	return r.findAll(ctx, bson.M{"_id": bson.M{"$in": oids}}, nil)
}

// List returns the full catalog without content items, newest first.
func (r *CourseRepository) List(ctx context.Context) ([]*domain.Course, error) {
	opts := options.Find().
		SetProjection(bson.M{"content": 0}).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findAll(ctx, bson.M{}, opts)
}

func (r *CourseRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Course, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.coll.Find(ctx, filter, opts)
	} else {
		cur, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	defer cur.Close(ctx)

	courses := []*domain.Course{}
	for cur.Next(ctx) {
		var mc mongoCourse
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		courses = append(courses, mc.toDomain())
	}
	return courses, cur.Err()
}

func (r *CourseRepository) Update(ctx context.Context, id string, patch ports.CourseUpdate) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Level != nil {
		set["level"] = string(*patch.Level)
	}
	if patch.Content != nil {
		content := make([]mongoContentItem, len(*patch.Content))
		for i, item := range *patch.Content {
			content[i] = mongoContentItem(item)
		}
		set["content"] = content
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mc mongoCourse
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// AddEnrollment appends userID to the enrolled set only when absent. The $ne
// guard makes the check-and-append a single atomic update; losing a race with
// a concurrent enroll reports ErrAlreadyEnrolled rather than duplicating the
// membership.
func (r *CourseRepository) AddEnrollment(ctx context.Context, courseID, userID string) error {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "enrolled_students": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"enrolled_students": userID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("add enrollment: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("add enrollment: %w", err)
	}
	if n == 0 {
		return domain.ErrCourseNotFound
	}
	return domain.ErrAlreadyEnrolled
}

// UpsertRating updates the student's rating entry in place when one exists,
// else appends a new entry guarded against concurrent duplicates.
func (r *CourseRepository) UpsertRating(ctx context.Context, courseID string, rating domain.Rating) error {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return domain.ErrCourseNotFound
	}
	now := time.Now().UTC()

	// In-place replace of an existing entry, preserving its position.
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "ratings.user_id": rating.UserID},
		bson.M{"$set": bson.M{
			"ratings.$.rating": rating.Value,
			"ratings.$.review": rating.Review,
			"updated_at":       now,
		}},
	)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// No existing entry: append, guarded so two concurrent first ratings
	// cannot both insert.
	res, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "ratings.user_id": bson.M{"$ne": rating.UserID}},
		bson.M{
			"$push": bson.M{"ratings": mongoRating(rating)},
			"$set":  bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Lost the append race to a concurrent first rating, or the course is
	// gone. Retry the in-place path once before concluding not-found.
	res, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "ratings.user_id": rating.UserID},
		bson.M{"$set": bson.M{
			"ratings.$.rating": rating.Value,
			"ratings.$.review": rating.Review,
			"updated_at":       now,
		}},
	)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes on the courses collection.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "instructor_id", Value: 1}}},
		{Keys: bson.D{{Key: "enrolled_students", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
