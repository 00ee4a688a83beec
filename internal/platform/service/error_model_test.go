package service

import (
	"errors"
	"fmt"
	"testing"
)

// 测试内容：验证字段错误收集器为空时不返回错误，非空时合并为校验错误。
func TestFieldErrors_Err(t *testing.T) {
	var fe FieldErrors
	if err := fe.Err(); err != nil {
		t.Fatalf("期望无错误，实际为 %v", err)
	}

	fe.Add("image", "extension not allowed")
	fe.Add("image", "file too large")
	if !fe.Has("image") || fe.Has("title") {
		t.Fatalf("Has 结果不符合预期: %+v", fe)
	}

	serviceErr, ok := AsServiceError(fe.Err())
	if !ok {
		t.Fatalf("期望返回 ServiceError")
	}
	if serviceErr.Code != ErrorCodeValidation {
		t.Fatalf("期望 code=validation，实际为 %s", serviceErr.Code)
	}
	if len(serviceErr.Fields) != 2 {
		t.Fatalf("期望两个字段错误，实际为 %d", len(serviceErr.Fields))
	}
}

// 测试内容：验证被包装的 ServiceError 仍能被识别。
func TestAsServiceError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewStatusLockedError("locked"))
	serviceErr, ok := AsServiceError(wrapped)
	if !ok || serviceErr.Code != ErrorCodeStatusLocked {
		t.Fatalf("期望识别 status_locked，实际为 %+v ok=%v", serviceErr, ok)
	}

	if _, ok := AsServiceError(errors.New("plain")); ok {
		t.Fatalf("普通错误不应被识别为 ServiceError")
	}
}
