package database

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"video_tube/internal/global"
	"video_tube/internal/logger"
	"video_tube/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureDatabaseAndCollections tạo trước các collection còn thiếu,
// để bước tạo index phía sau không gặp lỗi collection không tồn tại.
func EnsureDatabaseAndCollections(client *mongo.Client) error {
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbList, err := client.ListDatabaseNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list databases: %w", err)
	}
	if !utility.Contains(dbList, dbName) {
		logger.GetAppLogger().Infof("Database %s does not exist, will create automatically by creating collections", dbName)
	}

	db := client.Database(dbName)
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	names := reflect.ValueOf(global.MongoDB_ColNames)
	for i := 0; i < names.NumField(); i++ {
		colName := names.Field(i).String()
		if utility.Contains(existing, colName) {
			continue
		}
		logger.GetAppLogger().Infof("Collection %s chưa tồn tại, tạo mới.", colName)
		if err := db.CreateCollection(ctx, colName); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", colName, err)
		}
	}

	logger.GetAppLogger().Infof("Database and collections are ensured in database: %s", dbName)
	return nil
}

// parseOrder trích xuất thứ tự sắp xếp từ tag (1 hoặc -1)
func parseOrder(tag string) int {
	if strings.Contains(tag, "order:-1") {
		return -1
	}
	return 1
}

// parseIndexTag phân tách và phân tích tag index.
// Các cấu hình cách nhau bởi ';', mỗi cấu hình gồm các cặp key:value cách nhau bởi ','.
func parseIndexTag(tag string) []map[string]string {
	parts := strings.Split(tag, ";")
	result := []map[string]string{}

	for _, part := range parts {
		subParts := strings.Split(part, ",")
		entry := map[string]string{}
		for _, subPart := range subParts {
			kv := strings.Split(subPart, ":")
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		result = append(result, entry)
	}

	return result
}

// indexSpec mô tả một index cần đồng bộ lên collection.
type indexSpec struct {
	name string
	keys bson.D
	opts *options.IndexOptions
}

// bsonFieldName lấy tên field MongoDB từ bson tag (bỏ phần ",omitempty").
func bsonFieldName(field reflect.StructField) string {
	name := field.Tag.Get("bson")
	if idx := strings.Index(name, ","); idx >= 0 {
		name = name[:idx]
	}
	if name == "-" {
		return ""
	}
	return name
}

// collectIndexSpecs duyệt tag `index` trên các field của model và gom thành
// danh sách indexSpec. Tag hỗ trợ: text / single (kèm order) / unique (kèm sparse) /
// ttl:<giây> / compound:<tên_group> (group có hậu tố "_unique" → unique index).
// "partial" trên một field compound giới hạn index bằng
// partialFilterExpression {field: {$exists: true}}: chỉ document có field đó
// mới tham gia index. Khác với sparse — index compound sparse vẫn index
// document chỉ cần một key bất kỳ có mặt, nên không dùng được để scope
// ràng buộc unique theo field tùy chọn.
func collectIndexSpecs(modelType reflect.Type) ([]indexSpec, error) {
	var specs []indexSpec

	type compoundGroup struct {
		keys         bson.D
		unique       bool
		partialField string
	}
	compounds := map[string]*compoundGroup{}
	var compoundOrder []string // giữ thứ tự khai báo để tạo index ổn định

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := bsonFieldName(field)
		if bsonField == "" {
			continue
		}

		for _, config := range parseIndexTag(tag) {
			if _, ok := config["text"]; ok {
				name := bsonField + "_text"
				specs = append(specs, indexSpec{
					name: name,
					keys: bson.D{{Key: bsonField, Value: "text"}},
					opts: options.Index().SetName(name),
				})
			}

			if _, ok := config["single"]; ok {
				name := bsonField + "_single"
				specs = append(specs, indexSpec{
					name: name,
					keys: bson.D{{Key: bsonField, Value: parseOrder(tag)}},
					opts: options.Index().SetName(name),
				})
			}

			if _, ok := config["unique"]; ok {
				name := bsonField + "_unique"
				opts := options.Index().SetName(name).SetUnique(true)
				// Sparse: document vắng field này không tham gia ràng buộc unique
				if _, hasSparse := config["sparse"]; hasSparse {
					opts = opts.SetSparse(true)
				}
				specs = append(specs, indexSpec{
					name: name,
					keys: bson.D{{Key: bsonField, Value: 1}},
					opts: opts,
				})
			}

			if ttlValue, ok := config["ttl"]; ok {
				ttl, err := strconv.Atoi(ttlValue)
				if err != nil {
					return nil, fmt.Errorf("TTL không hợp lệ: %w", err)
				}
				name := bsonField + "_ttl"
				specs = append(specs, indexSpec{
					name: name,
					keys: bson.D{{Key: bsonField, Value: 1}},
					opts: options.Index().SetName(name).SetExpireAfterSeconds(int32(ttl)),
				})
			}

			if groupName, ok := config["compound"]; ok {
				grp, exists := compounds[groupName]
				if !exists {
					grp = &compoundGroup{unique: strings.Contains(groupName, "_unique")}
					compounds[groupName] = grp
					compoundOrder = append(compoundOrder, groupName)
				}
				grp.keys = append(grp.keys, bson.E{Key: bsonField, Value: parseOrder(tag)})
				if _, hasPartial := config["partial"]; hasPartial {
					grp.partialField = bsonField
				}
			}
		}
	}

	for _, groupName := range compoundOrder {
		grp := compounds[groupName]
		opts := options.Index().SetName(groupName)
		if grp.unique {
			opts = opts.SetUnique(true)
		}
		if grp.partialField != "" {
			opts = opts.SetPartialFilterExpression(
				bson.D{{Key: grp.partialField, Value: bson.D{{Key: "$exists", Value: true}}}},
			)
		}
		specs = append(specs, indexSpec{name: groupName, keys: grp.keys, opts: opts})
	}

	return specs, nil
}

// samePartialFilter so sánh partialFilterExpression của index hiện có với spec.
// Chỉ so tập field: spec chỉ sinh biểu thức dạng {field: {$exists: true}}.
func samePartialFilter(existing bson.M, opts *options.IndexOptions) bool {
	existingPFE, hasExisting := existing["partialFilterExpression"].(bson.M)
	if opts.PartialFilterExpression == nil {
		return !hasExisting
	}
	wantPFE, ok := opts.PartialFilterExpression.(bson.D)
	if !ok || !hasExisting {
		return false
	}
	for _, field := range wantPFE {
		if _, exists := existingPFE[field.Key]; !exists {
			return false
		}
	}
	return len(existingPFE) == len(wantPFE)
}

// sameIndex so sánh index hiện có với spec mới (keys, unique, partial, TTL).
func sameIndex(existing bson.M, keys bson.D, opts *options.IndexOptions) bool {
	existingKeys, ok := existing["key"].(bson.M)
	if !ok {
		return false
	}

	for _, key := range keys {
		current, exists := existingKeys[key.Key]
		if !exists {
			return false
		}
		// Driver trả về 1/-1 dưới nhiều kiểu số khác nhau tuỳ version
		if want, isInt := key.Value.(int); isInt {
			switch cv := current.(type) {
			case int32:
				if int(cv) != want {
					return false
				}
			case int64:
				if int(cv) != want {
					return false
				}
			case float64:
				if int(cv) != want {
					return false
				}
			default:
				return false
			}
		} else if current != key.Value {
			return false
		}
	}

	if unique, ok := existing["unique"].(bool); ok && opts.Unique != nil {
		if unique != *opts.Unique {
			return false
		}
	} else if opts.Unique != nil && *opts.Unique {
		// Index cũ không unique, spec mới unique
		return false
	}

	if !samePartialFilter(existing, opts) {
		return false
	}

	// Index sparse cũ cùng tên phải bị thay khi spec đã bỏ sparse
	if sparse, ok := existing["sparse"].(bool); ok && sparse && opts.Sparse == nil {
		return false
	}

	if ttl, ok := existing["expireAfterSeconds"].(int32); ok && opts.ExpireAfterSeconds != nil {
		if ttl != *opts.ExpireAfterSeconds {
			return false
		}
	}

	return true
}

// syncIndex tạo index theo spec; index trùng tên nhưng khác cấu hình bị drop trước.
func syncIndex(ctx context.Context, collection *mongo.Collection, existingIndexes map[string]bson.M, spec indexSpec) error {
	if existing, ok := existingIndexes[spec.name]; ok {
		if sameIndex(existing, spec.keys, spec.opts) {
			return nil
		}
		if _, err := collection.Indexes().DropOne(ctx, spec.name); err != nil {
			return fmt.Errorf("không thể xóa index %s: %w", spec.name, err)
		}
		logger.GetAppLogger().Infof("Đã xóa index cũ: %s", spec.name)
	}

	if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.keys, Options: spec.opts}); err != nil {
		return fmt.Errorf("không thể tạo index %s: %w", spec.name, err)
	}
	logger.GetAppLogger().Infof("Đã tạo index: %s", spec.name)
	return nil
}

// CreateIndexes đọc tag `index` trên model và đồng bộ toàn bộ index cho collection.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	defer cursor.Close(ctx)

	existingIndexes := map[string]bson.M{}
	for cursor.Next(ctx) {
		var info bson.M
		if err := cursor.Decode(&info); err != nil {
			return fmt.Errorf("không thể giải mã thông tin index: %w", err)
		}
		if name, ok := info["name"].(string); ok {
			existingIndexes[name] = info
		}
	}

	specs, err := collectIndexSpecs(modelType)
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if err := syncIndex(ctx, collection, existingIndexes, spec); err != nil {
			return err
		}
	}
	return nil
}
