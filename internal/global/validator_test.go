package global

import (
	"testing"
)

func setupValidator(t *testing.T) {
	t.Helper()
	if Validate == nil {
		InitValidator()
	}
}

func TestValidateNotBlank(t *testing.T) {
	setupValidator(t)

	if err := Validate.Var("nội dung", "not_blank"); err != nil {
		t.Errorf("chuỗi có nội dung phải hợp lệ: %v", err)
	}
	if err := Validate.Var("   ", "not_blank"); err == nil {
		t.Error("chuỗi toàn khoảng trắng phải bị từ chối")
	}
	if err := Validate.Var("\t\n", "not_blank"); err == nil {
		t.Error("chuỗi toàn tab/xuống dòng phải bị từ chối")
	}
}

func TestValidateNoXSS(t *testing.T) {
	setupValidator(t)

	bad := []string{
		"<script>alert(1)</script>",
		"<SCRIPT>alert(1)</SCRIPT>",
		"click javascript:alert(1)",
		"<img src=x onerror=alert(1)>",
		"<iframe src=x></iframe>",
	}
	for _, v := range bad {
		if err := Validate.Var(v, "no_xss"); err == nil {
			t.Errorf("chuỗi nguy hiểm phải bị từ chối: %q", v)
		}
	}

	good := []string{
		"video hướng dẫn Go",
		"so sánh A < B và B > C",
		"tài liệu về onclick handler", // chỉ chặn dạng onclick= có gán
	}
	for _, v := range good {
		if err := Validate.Var(v, "no_xss"); err != nil {
			t.Errorf("chuỗi lành phải hợp lệ: %q, lỗi: %v", v, err)
		}
	}
}

func TestValidateStructTags(t *testing.T) {
	setupValidator(t)

	type input struct {
		Content string `validate:"required,not_blank,max=10,no_xss"`
	}

	if err := Validate.Struct(input{Content: "ok"}); err != nil {
		t.Errorf("input hợp lệ bị từ chối: %v", err)
	}
	if err := Validate.Struct(input{Content: ""}); err == nil {
		t.Error("required phải chặn chuỗi rỗng")
	}
	if err := Validate.Struct(input{Content: "dài quá mười ký tự thật sự"}); err == nil {
		t.Error("max=10 phải chặn chuỗi dài")
	}
}
