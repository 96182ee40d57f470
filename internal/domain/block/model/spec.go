package model

import (
	"fmt"

	"canvas_blog/internal/pkg/apperr"
)

// ValidateSpecs 校验块描述：至少一个块，类型标签可识别
func ValidateSpecs(specs []BlockSpec) error {
	if len(specs) == 0 {
		return apperr.New(apperr.ErrInvalidArgument, "at least one block is required")
	}
	for _, s := range specs {
		if !s.Type.Valid() {
			return apperr.New(apperr.ErrInvalidArgument, fmt.Sprintf("unrecognized block type %q", s.Type))
		}
	}
	return nil
}

// NormalizeMain 归一化主块标记
// 一个不标 → 提升提交顺序的第一个；标了多个 → 拒绝
func NormalizeMain(specs []BlockSpec) error {
	mainCount := 0
	for i := range specs {
		if specs[i].Main {
			mainCount++
		}
	}
	if mainCount > 1 {
		return apperr.New(apperr.ErrInvalidArgument, "too many main blocks")
	}
	if mainCount == 0 && len(specs) > 0 {
		specs[0].Main = true
	}
	return nil
}
