// Package database - Test parser tag index trên model.
package database

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	likemodels "video_tube/internal/api/like/models"
)

func TestParseIndexTag_SingleConfig(t *testing.T) {
	configs := parseIndexTag("unique,sparse")
	if len(configs) != 1 {
		t.Fatalf("một cấu hình, nhận %d: %v", len(configs), configs)
	}
	if _, ok := configs[0]["unique"]; !ok {
		t.Errorf("thiếu key unique: %v", configs[0])
	}
	if _, ok := configs[0]["sparse"]; !ok {
		t.Errorf("thiếu key sparse: %v", configs[0])
	}
}

func TestParseIndexTag_MultipleConfigs(t *testing.T) {
	configs := parseIndexTag("single;compound:video_owner_published")
	if len(configs) != 2 {
		t.Fatalf("hai cấu hình cách bởi ';', nhận %d: %v", len(configs), configs)
	}
	if _, ok := configs[0]["single"]; !ok {
		t.Errorf("cấu hình đầu phải là single: %v", configs[0])
	}
	if group := configs[1]["compound"]; group != "video_owner_published" {
		t.Errorf("compound phải giữ tên nhóm, nhận %q", group)
	}
}

func TestParseIndexTag_CompoundWithPartial(t *testing.T) {
	configs := parseIndexTag("compound:like_video_user_unique,partial")
	if len(configs) != 1 {
		t.Fatalf("một cấu hình, nhận %d: %v", len(configs), configs)
	}
	if group := configs[0]["compound"]; group != "like_video_user_unique" {
		t.Errorf("tên nhóm compound sai: %q", group)
	}
	if _, ok := configs[0]["partial"]; !ok {
		t.Errorf("thiếu partial trong cùng cấu hình: %v", configs[0])
	}
}

// Ràng buộc unique của like phải scope theo từng loại đích bằng
// partialFilterExpression. Sparse không làm được việc đó: index compound sparse
// vẫn index document chỉ cần một key có mặt, mà likedBy luôn có mặt — like thứ
// hai của cùng user trên đích khác loại sẽ va E11000 ở index của loại kia.
func TestCollectIndexSpecs_LikeUniquePerTarget(t *testing.T) {
	specs, err := collectIndexSpecs(reflect.TypeOf(likemodels.Like{}))
	if err != nil {
		t.Fatalf("collectIndexSpecs lỗi: %v", err)
	}

	wantGroups := map[string]string{
		"like_video_user_unique":   "video",
		"like_comment_user_unique": "comment",
		"like_tweet_user_unique":   "tweet",
	}
	found := 0
	for _, spec := range specs {
		targetField, ok := wantGroups[spec.name]
		if !ok {
			continue
		}
		found++

		if len(spec.keys) != 2 || spec.keys[0].Key != targetField || spec.keys[1].Key != "likedBy" {
			t.Errorf("%s: keys phải là (%s, likedBy), nhận %v", spec.name, targetField, spec.keys)
		}
		if spec.opts.Unique == nil || !*spec.opts.Unique {
			t.Errorf("%s phải unique", spec.name)
		}
		if spec.opts.Sparse != nil {
			t.Errorf("%s không được sparse: ràng buộc sẽ tràn sang loại đích khác", spec.name)
		}

		pfe, ok := spec.opts.PartialFilterExpression.(bson.D)
		if !ok || len(pfe) != 1 {
			t.Fatalf("%s thiếu partialFilterExpression: %v", spec.name, spec.opts.PartialFilterExpression)
		}
		if pfe[0].Key != targetField {
			t.Errorf("%s: partial filter phải theo field %s, nhận %s", spec.name, targetField, pfe[0].Key)
		}
		exists, ok := pfe[0].Value.(bson.D)
		if !ok || len(exists) != 1 || exists[0].Key != "$exists" || exists[0].Value != true {
			t.Errorf("%s: partial filter phải là {%s: {$exists: true}}, nhận %v", spec.name, targetField, pfe[0].Value)
		}
	}
	if found != len(wantGroups) {
		t.Fatalf("thiếu index toggle-guard: tìm thấy %d/%d", found, len(wantGroups))
	}
}

// Index sparse cũ cùng tên phải bị coi là khác spec để được drop và tạo lại.
func TestSameIndex_SparseCuPhaiThayBangPartial(t *testing.T) {
	specs, err := collectIndexSpecs(reflect.TypeOf(likemodels.Like{}))
	if err != nil {
		t.Fatalf("collectIndexSpecs lỗi: %v", err)
	}
	for _, spec := range specs {
		if spec.name != "like_video_user_unique" {
			continue
		}
		existing := bson.M{
			"name":   spec.name,
			"key":    bson.M{"video": int32(1), "likedBy": int32(1)},
			"unique": true,
			"sparse": true,
		}
		if sameIndex(existing, spec.keys, spec.opts) {
			t.Error("index sparse hiện có phải bị phát hiện là khác spec partial")
		}
		return
	}
	t.Fatal("không tìm thấy spec like_video_user_unique")
}

func TestParseOrder(t *testing.T) {
	if got := parseOrder("single,order:-1"); got != -1 {
		t.Errorf("order:-1 phải ra -1, nhận %d", got)
	}
	if got := parseOrder("single"); got != 1 {
		t.Errorf("mặc định phải tăng dần, nhận %d", got)
	}
	if got := parseOrder("ttl:3600"); got != 1 {
		t.Errorf("không có order thì mặc định 1, nhận %d", got)
	}
}
