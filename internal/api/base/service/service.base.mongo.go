// package basesvc chứa tầng truy cập MongoDB dùng chung cho mọi domain.
package basesvc

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "video_tube/internal/api/base/models"
	"video_tube/internal/common"
	"video_tube/internal/utility"
)

// UpdateData gom các operator update của MongoDB thành một document partial update.
// Marshal trực tiếp ra {$set: ..., $unset: ...} nhờ bson tag + omitempty.
type UpdateData struct {
	Set         map[string]interface{} `bson:"$set,omitempty"`
	SetOnInsert map[string]interface{} `bson:"$setOnInsert,omitempty"`
	Unset       map[string]interface{} `bson:"$unset,omitempty"`
	Push        map[string]interface{} `bson:"$push,omitempty"`
	AddToSet    map[string]interface{} `bson:"$addToSet,omitempty"`
	Pull        map[string]interface{} `bson:"$pull,omitempty"`
	Inc         map[string]interface{} `bson:"$inc,omitempty"`
}

// updateOperators liệt kê các operator mà UpdateData hỗ trợ.
var updateOperators = []string{"$set", "$setOnInsert", "$unset", "$push", "$addToSet", "$pull", "$inc"}

// ToUpdateData đưa dữ liệu update về dạng *UpdateData thống nhất.
// Chấp nhận: *UpdateData / UpdateData, []byte (BSON raw),
// map có sẵn operator ($set, $inc...), hoặc map/struct thường (wrap vào $set).
func ToUpdateData(data interface{}) (*UpdateData, error) {
	switch v := data.(type) {
	case *UpdateData:
		return v, nil
	case UpdateData:
		return &v, nil
	case []byte:
		u := &UpdateData{}
		if err := bson.Unmarshal(bson.Raw(v), u); err != nil {
			return nil, err
		}
		return u, nil
	}

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return nil, err
	}

	if !hasMongoOperator(dataMap) {
		// Map/struct thường: toàn bộ field đi vào $set
		return &UpdateData{Set: dataMap}, nil
	}

	u := &UpdateData{}
	targets := map[string]*map[string]interface{}{
		"$set":         &u.Set,
		"$setOnInsert": &u.SetOnInsert,
		"$unset":       &u.Unset,
		"$push":        &u.Push,
		"$addToSet":    &u.AddToSet,
		"$pull":        &u.Pull,
		"$inc":         &u.Inc,
	}
	for op, dst := range targets {
		if fields, ok := dataMap[op].(map[string]interface{}); ok {
			*dst = fields
		}
	}
	return u, nil
}

func hasMongoOperator(dataMap map[string]interface{}) bool {
	for _, op := range updateOperators {
		if _, ok := dataMap[op]; ok {
			return true
		}
	}
	return false
}

// touchUpdatedAt ghi mốc updatedAt (epoch millisecond) vào $set.
func touchUpdatedAt(u *UpdateData) {
	if u.Set == nil {
		u.Set = make(map[string]interface{})
	}
	u.Set["updatedAt"] = time.Now().UnixMilli()
}

// orEmptyFilter thay filter nil hoặc map rỗng bằng bson.D{} để driver không panic.
func orEmptyFilter(filter interface{}) interface{} {
	if filter == nil {
		return bson.D{}
	}
	if m, ok := filter.(map[string]interface{}); ok && len(m) == 0 {
		return bson.D{}
	}
	return filter
}

// pageWindow chuẩn hoá page/limit và trả về giá trị skip tương ứng.
func pageWindow(page, limit int64) (int64, int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}

// pageCount tính số trang, làm tròn lên. total = 0 → 0 trang.
func pageCount(total, limit int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// BaseServiceMongo là interface CRUD chung; mỗi domain service nhúng một implementation
// của interface này và bổ sung nghiệp vụ riêng (pipeline, kiểm tra quyền sở hữu...).
type BaseServiceMongo[Model any] interface {
	// Insert
	InsertOne(ctx context.Context, data Model) (Model, error)
	InsertMany(ctx context.Context, data []Model) ([]Model, error)

	// Find
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (Model, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]Model, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (Model, error)
	FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]Model, error)
	FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[Model], error)

	// Update
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (Model, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (int64, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (Model, error)

	// Delete
	DeleteOne(ctx context.Context, filter interface{}) error
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error

	// Atomic
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (Model, error)
	FindOneAndDelete(ctx context.Context, filter interface{}, opts *options.FindOneAndDeleteOptions) (Model, error)

	// Aggregation / thống kê
	Aggregate(ctx context.Context, pipeline []bson.M) ([]bson.M, error)
	AggregateWithPagination(ctx context.Context, pipeline []bson.M, page, limit int64) (*basemodels.PaginateResult[bson.M], error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
}

// BaseServiceMongoImpl triển khai BaseServiceMongo trên một collection cụ thể.
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo service gắn với collection truyền vào.
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// Collection cho domain service truy cập trực tiếp collection
// (chạy pipeline trên collection khác qua $lookup, mở transaction...).
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// InsertOne ghi một document mới kèm timestamps, trả về document vừa tạo.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	doc, err := utility.ToMap(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	// Unique index partial/sparse bỏ qua field vắng mặt chứ không bỏ qua
	// chuỗi rỗng, nên phải gỡ hẳn các field "" trước khi insert.
	for k, v := range doc {
		if sv, ok := v.(string); ok && sv == "" {
			delete(doc, k)
		}
	}

	now := time.Now().UnixMilli()
	doc["createdAt"] = now
	doc["updatedAt"] = now

	res, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	var created T
	if err := s.collection.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return created, nil
}

// InsertMany ghi một loạt document, tất cả dùng chung một mốc thời gian.
func (s *BaseServiceMongoImpl[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	now := time.Now().UnixMilli()
	docs := make([]interface{}, 0, len(data))
	for _, item := range data {
		doc, err := utility.ToMap(item)
		if err != nil {
			return nil, common.ErrInvalidFormat
		}
		doc["createdAt"] = now
		doc["updatedAt"] = now
		docs = append(docs, doc)
	}

	res, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": res.InsertedIDs}})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var created []T
	if err := cursor.All(ctx, &created); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return created, nil
}

// FindOne tìm một document theo filter.
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero T
	if opts == nil {
		opts = options.FindOne()
	}

	sr := s.collection.FindOne(ctx, orEmptyFilter(filter), opts)
	if err := sr.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}

	var doc T
	if err := sr.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		// Decode hỏng là dữ liệu sai format chứ không phải lỗi lệnh MongoDB
		return zero, common.NewError(
			common.ErrCodeValidationFormat,
			"Lỗi định dạng dữ liệu khi decode từ MongoDB",
			common.StatusBadRequest,
			err,
		)
	}
	return doc, nil
}

// Find tìm toàn bộ document khớp filter. Luôn trả về slice, không trả nil.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if opts == nil {
		opts = options.Find()
	}

	cursor, err := s.collection.Find(ctx, orEmptyFilter(filter), opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if docs == nil {
		docs = []T{}
	}
	return docs, nil
}

// FindOneById tìm document theo _id.
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	var doc T
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		var zero T
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return doc, nil
}

// FindManyByIds tìm các document có _id nằm trong danh sách.
func (s *BaseServiceMongoImpl[T]) FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return docs, nil
}

// FindWithPagination tìm theo filter + trang. Skip/limit trong opts bị ghi đè.
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	filter = orEmptyFilter(filter)
	if opts == nil {
		opts = options.Find()
	}

	page, limit, skip := pageWindow(page, limit)
	opts.SetSkip(skip)
	opts.SetLimit(limit)

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var items []T
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if items == nil {
		items = []T{}
	}

	return &basemodels.PaginateResult[T]{
		Items:     items,
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Total:     total,
		TotalPage: pageCount(total, limit),
	}, nil
}

// UpdateOne cập nhật một document khớp filter và trả về bản sau update.
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (T, error) {
	var zero T
	filter = orEmptyFilter(filter)
	if opts == nil {
		opts = options.Update().SetUpsert(false)
	}

	u, err := ToUpdateData(update)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}
	touchUpdatedAt(u)

	res, err := s.collection.UpdateOne(ctx, filter, u, opts)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return zero, common.ErrNotFound
	}

	readBack := filter
	if res.UpsertedID != nil {
		readBack = bson.M{"_id": res.UpsertedID}
	}
	var doc T
	if err := s.collection.FindOne(ctx, readBack).Decode(&doc); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return doc, nil
}

// UpdateMany cập nhật mọi document khớp filter, trả về số bản ghi đã sửa.
func (s *BaseServiceMongoImpl[T]) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (int64, error) {
	if opts == nil {
		opts = options.Update().SetUpsert(false)
	}

	u, err := ToUpdateData(update)
	if err != nil {
		return 0, common.ErrInvalidFormat
	}
	touchUpdatedAt(u)

	res, err := s.collection.UpdateMany(ctx, orEmptyFilter(filter), u, opts)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return res.ModifiedCount, nil
}

// UpdateById cập nhật theo _id, trả về document SAU khi update.
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (T, error) {
	var zero T

	u, err := ToUpdateData(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}
	touchUpdatedAt(u)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, u, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return doc, nil
}

// DeleteOne xóa một document khớp filter. Không khớp gì → ErrNotFound.
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) error {
	res, err := s.collection.DeleteOne(ctx, orEmptyFilter(filter))
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteMany xóa mọi document khớp filter, trả về số bản ghi đã xóa.
func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	res, err := s.collection.DeleteMany(ctx, orEmptyFilter(filter))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return res.DeletedCount, nil
}

// DeleteById xóa document theo _id.
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteOne(ctx, bson.M{"_id": id})
}

// FindOneAndUpdate cập nhật nguyên tử một document và trả về kết quả theo opts.
func (s *BaseServiceMongoImpl[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (T, error) {
	var zero T
	if opts == nil {
		opts = options.FindOneAndUpdate()
	}

	u, err := ToUpdateData(update)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}
	touchUpdatedAt(u)

	var doc T
	err = s.collection.FindOneAndUpdate(ctx, orEmptyFilter(filter), u, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return doc, nil
}

// FindOneAndDelete xóa nguyên tử một document và trả về bản đã xóa.
// Không khớp gì → ErrNotFound (caller toggle dựa vào đây để phân nhánh insert).
func (s *BaseServiceMongoImpl[T]) FindOneAndDelete(ctx context.Context, filter interface{}, opts *options.FindOneAndDeleteOptions) (T, error) {
	var zero T
	if opts == nil {
		opts = options.FindOneAndDelete()
	}

	var doc T
	err := s.collection.FindOneAndDelete(ctx, orEmptyFilter(filter), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return doc, nil
}

// Aggregate chạy pipeline và trả kết quả dạng bson.M: kết quả pipeline
// thường mang field tính toán (likesCount, isLiked...) không map về Model được.
func (s *BaseServiceMongoImpl[T]) Aggregate(ctx context.Context, pipeline []bson.M) ([]bson.M, error) {
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if rows == nil {
		rows = []bson.M{}
	}
	return rows, nil
}

// AggregateWithPagination chạy pipeline theo trang. Pipeline truyền vào không
// được chứa $skip/$limit: hàm tự chèn, và đếm tổng bằng một nhánh $count riêng.
func (s *BaseServiceMongoImpl[T]) AggregateWithPagination(ctx context.Context, pipeline []bson.M, page, limit int64) (*basemodels.PaginateResult[bson.M], error) {
	page, limit, skip := pageWindow(page, limit)

	countPipeline := append(append(make([]bson.M, 0, len(pipeline)+1), pipeline...), bson.M{"$count": "total"})
	countCursor, err := s.collection.Aggregate(ctx, countPipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var counts []struct {
		Total int64 `bson:"total"`
	}
	if err := countCursor.All(ctx, &counts); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var total int64
	if len(counts) > 0 {
		total = counts[0].Total
	}

	dataPipeline := append(append(make([]bson.M, 0, len(pipeline)+2), pipeline...),
		bson.M{"$skip": skip}, bson.M{"$limit": limit})
	cursor, err := s.collection.Aggregate(ctx, dataPipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var items []bson.M
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if items == nil {
		items = []bson.M{}
	}

	return &basemodels.PaginateResult[bson.M]{
		Items:     items,
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Total:     total,
		TotalPage: pageCount(total, limit),
	}, nil
}

// CountDocuments đếm số document khớp filter.
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	n, err := s.collection.CountDocuments(ctx, orEmptyFilter(filter))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return n, nil
}

// Distinct lấy các giá trị duy nhất của một field.
func (s *BaseServiceMongoImpl[T]) Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error) {
	values, err := s.collection.Distinct(ctx, fieldName, orEmptyFilter(filter))
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return values, nil
}

// DocumentExists báo có ít nhất một document khớp filter hay không.
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	n, err := s.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
