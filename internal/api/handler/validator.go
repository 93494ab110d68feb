package handler

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/channel-engage/internal/model"
)

var registerOnce sync.Once

// RegisterValidators 注册自定义 binding 规则：
//
//	polarity  空、"like" 或 "dislike"
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("polarity", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "", model.Like.String(), model.Dislike.String():
				return true
			}
			return false
		})
	})
}
