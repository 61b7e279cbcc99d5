// Package basehdl cung cấp handler nền cho tầng HTTP: parse/validate request,
// chuẩn hóa filter + options truy vấn và bộ handler đọc generic cho mọi collection.
// Các thao tác ghi không đi qua tầng generic; chúng thuộc handler nghiệp vụ
// của từng domain để bảo toàn kiểm tra chủ sở hữu.
package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "video_tube/internal/api/base/service"
	"video_tube/internal/common"
	"video_tube/internal/global"
	"video_tube/internal/utility"
)

// FilterOptions giới hạn bề mặt truy vấn client được phép gửi lên.
type FilterOptions struct {
	DeniedFields     []string // Trường bị cấm trong filter/projection/sort
	AllowedOperators []string // Các operator MongoDB được phép trong filter
	MaxFields        int      // Số trường tối đa trong một filter
}

// defaultFilterOptions áp dụng khi domain không cấu hình riêng.
func defaultFilterOptions() FilterOptions {
	return FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	}
}

// BaseHandler cung cấp các handler đọc generic trên một model T
// cùng các tiện ích parse/validate dùng chung cho handler nghiệp vụ.
type BaseHandler[T any] struct {
	BaseService   basesvc.BaseServiceMongo[T]
	filterOptions FilterOptions
}

// NewBaseHandler tạo BaseHandler với cấu hình filter mặc định.
func NewBaseHandler[T any](baseService basesvc.BaseServiceMongo[T]) *BaseHandler[T] {
	return &BaseHandler[T]{
		BaseService:   baseService,
		filterOptions: defaultFilterOptions(),
	}
}

// ValidateInput chạy validator toàn cục trên input (struct tag `validate`).
func (h *BaseHandler[T]) ValidateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ParseRequestBody decode JSON body vào input.
// UseNumber giữ số dưới dạng json.Number, tránh mất chính xác với int64 lớn.
func (h *BaseHandler[T]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ParseRequestParams bind URI params vào input rồi validate.
func (h *BaseHandler[T]) ParseRequestParams(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().URI(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ProcessFilter đọc query param `filter` (JSON), chuẩn hóa ObjectID và validate.
func (h *BaseHandler[T]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	var filter map[string]interface{}

	filterStr := c.Query("filter", "{}")
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter không đúng định dạng JSON: %v (giá trị: %s)", err, filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	filter = h.normalizeFilter(filter)
	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}
	return filter, nil
}

// normalizeFilter đổi các chuỗi hex 24 ký tự thành ObjectID cho trường có tên
// kết thúc bằng "id"/"Id"/"ID". Client JSON không có kiểu ObjectID nên phải suy ra.
func (h *BaseHandler[T]) normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	if filter == nil {
		return filter
	}
	normalized := make(map[string]interface{}, len(filter))
	for field, value := range filter {
		fieldLower := strings.ToLower(field)
		isIDField := strings.HasSuffix(fieldLower, "id") && len(fieldLower) > 2
		normalized[field] = h.normalizeFilterValue(value, isIDField)
	}
	return normalized
}

// normalizeFilterValue xử lý đệ quy giá trị filter: chuỗi hex, Extended JSON
// {"$oid": ...}, mảng và các operator như $in/$nin.
func (h *BaseHandler[T]) normalizeFilterValue(value interface{}, isIDField bool) interface{} {
	switch v := value.(type) {
	case nil:
		return value

	case string:
		if isIDField && primitive.IsValidObjectID(v) {
			if objID, err := primitive.ObjectIDFromHex(v); err == nil {
				return objID
			}
		}
		return v

	case []interface{}:
		normalized := make([]interface{}, len(v))
		for i, item := range v {
			normalized[i] = h.normalizeFilterValue(item, isIDField)
		}
		return normalized

	case map[string]interface{}:
		// Extended JSON: {"$oid": "..."}
		if oidValue, hasOid := v["$oid"]; hasOid {
			if oidStr, ok := oidValue.(string); ok && primitive.IsValidObjectID(oidStr) {
				if objID, err := primitive.ObjectIDFromHex(oidStr); err == nil {
					return objID
				}
			}
			return value
		}
		normalized := make(map[string]interface{}, len(v))
		for key, val := range v {
			normalized[key] = h.normalizeFilterValue(val, isIDField)
		}
		return normalized

	default:
		return value
	}
}

// validateFilter chặn trường nhạy cảm, operator ngoài whitelist và filter quá lớn.
func (h *BaseHandler[T]) validateFilter(filter map[string]interface{}) error {
	opts := h.filterOptions

	if len(filter) > opts.MaxFields {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter vượt quá số trường cho phép (tối đa %d, hiện có %d)", opts.MaxFields, len(filter)),
			common.StatusBadRequest,
			nil,
		)
	}

	for field, value := range filter {
		if utility.Contains(opts.DeniedFields, field) {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Trường '%s' không được phép dùng trong filter", field),
				common.StatusBadRequest,
				nil,
			)
		}
		if mapValue, ok := value.(map[string]interface{}); ok {
			for op := range mapValue {
				if strings.HasPrefix(op, "$") && !utility.Contains(opts.AllowedOperators, op) {
					return common.NewError(
						common.ErrCodeValidationFormat,
						fmt.Sprintf("Toán tử '%s' không được phép. Cho phép: %v", op, opts.AllowedOperators),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}
	return nil
}

// processMongoOptions đọc query param `options` (JSON: projection/sort/limit/skip)
// và chuyển sang options của driver. isFindOne quyết định kiểu options trả về.
func (h *BaseHandler[T]) processMongoOptions(c fiber.Ctx, isFindOne bool) (interface{}, error) {
	var rawOptions map[string]interface{}

	optionsStr := c.Query("options", "{}")
	if err := json.Unmarshal([]byte(optionsStr), &rawOptions); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Options không đúng định dạng JSON: %v (giá trị: %s)", err, optionsStr),
			common.StatusBadRequest,
			err,
		)
	}

	if err := h.validateMongoOptions(rawOptions); err != nil {
		return nil, err
	}

	if isFindOne {
		opts := mongoopts.FindOne()
		if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
			opts.SetProjection(projection)
		}
		if sort, ok := rawOptions["sort"].(map[string]interface{}); ok {
			opts.SetSort(parseSortOrdered(sort, optionsStr))
		}
		return opts, nil
	}

	opts := mongoopts.Find()
	if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
		opts.SetProjection(projection)
	}
	if sort, ok := rawOptions["sort"].(map[string]interface{}); ok {
		opts.SetSort(parseSortOrdered(sort, optionsStr))
	}
	if limit, ok := rawOptions["limit"].(float64); ok {
		opts.SetLimit(int64(limit))
	}
	if skip, ok := rawOptions["skip"].(float64); ok {
		opts.SetSkip(int64(skip))
	}
	return opts, nil
}

// parseSortOrdered dựng bson.D sort theo ĐÚNG thứ tự key trong JSON gốc.
// json.Unmarshal vào map làm mất thứ tự, nên duyệt lại phần sort bằng
// json.Decoder Token(); lỗi ở bước nào thì fallback về duyệt map.
func parseSortOrdered(sortMap map[string]interface{}, optionsJSON string) bson.D {
	fromMap := func() bson.D {
		sortBson := bson.D{}
		for field, value := range sortMap {
			if v, ok := value.(float64); ok && (v == 1 || v == -1) {
				sortBson = append(sortBson, bson.E{Key: field, Value: int(v)})
			}
		}
		return sortBson
	}

	var rawParts map[string]json.RawMessage
	if err := json.Unmarshal([]byte(optionsJSON), &rawParts); err != nil {
		return fromMap()
	}
	sortRaw, ok := rawParts["sort"]
	if !ok {
		return bson.D{}
	}

	decoder := json.NewDecoder(bytes.NewReader(sortRaw))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil || token != json.Delim('{') {
		return fromMap()
	}

	sortBson := bson.D{}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			break
		}
		field, ok := keyToken.(string)
		if !ok {
			continue
		}

		valueToken, err := decoder.Token()
		if err != nil {
			break
		}

		var sortValue int
		switch v := valueToken.(type) {
		case json.Number:
			intVal, err := v.Int64()
			if err != nil {
				floatVal, ferr := v.Float64()
				if ferr != nil {
					continue
				}
				intVal = int64(floatVal)
			}
			sortValue = int(intVal)
		case float64:
			sortValue = int(v)
		default:
			continue
		}

		if sortValue != 1 && sortValue != -1 {
			continue
		}
		sortBson = append(sortBson, bson.E{Key: field, Value: sortValue})
	}
	_, _ = decoder.Token()

	if len(sortBson) == 0 {
		return fromMap()
	}
	return sortBson
}

// validateMongoOptions whitelist options và kiểm tra giá trị từng phần.
func (h *BaseHandler[T]) validateMongoOptions(options map[string]interface{}) error {
	deniedFields := h.filterOptions.DeniedFields

	allowedOptions := map[string]bool{
		"projection": true,
		"sort":       true,
		"limit":      true,
		"skip":       true,
	}
	for key := range options {
		if !allowedOptions[key] {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Option '%s' không được hỗ trợ. Cho phép: projection, sort, limit, skip", key),
				common.StatusBadRequest,
				nil,
			)
		}
	}

	if projection, ok := options["projection"].(map[string]interface{}); ok {
		for field := range projection {
			if utility.Contains(deniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Trường '%s' không được phép dùng trong projection", field),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	if sort, ok := options["sort"].(map[string]interface{}); ok {
		for field, value := range sort {
			if utility.Contains(deniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Trường '%s' không được phép dùng trong sort", field),
					common.StatusBadRequest,
					nil,
				)
			}
			if v, ok := value.(float64); !ok || (v != 1 && v != -1) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Giá trị sort cho '%s' phải là 1 hoặc -1, nhận: %v", field, value),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	if limit, ok := options["limit"].(float64); ok {
		if limit <= 0 {
			return common.NewError(common.ErrCodeValidationFormat, "Giá trị limit phải lớn hơn 0", common.StatusBadRequest, nil)
		}
		if limit > 1000 {
			return common.NewError(common.ErrCodeValidationFormat, "Giá trị limit không được vượt quá 1000", common.StatusBadRequest, nil)
		}
	}

	if skip, ok := options["skip"].(float64); ok && skip < 0 {
		return common.NewError(common.ErrCodeValidationFormat, "Giá trị skip không được âm", common.StatusBadRequest, nil)
	}

	return nil
}

// ParsePagination đọc page/limit từ query, mặc định page=1 limit=10.
func (h *BaseHandler[T]) ParsePagination(c fiber.Ctx) (int64, int64) {
	page := utility.P2Int64(c.Query("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit := utility.P2Int64(c.Query("limit", "10"))
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}

// GetIDFromContext lấy param id từ URI.
func (h *BaseHandler[T]) GetIDFromContext(c fiber.Ctx) string {
	return c.Params("id")
}
