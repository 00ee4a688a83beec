// Package workflow 定义申请状态流转规则。所有状态变更都必须经过 Transition。
package workflow

import (
	"errors"
	"strings"

	"interior-request-server/internal/model"
)

var (
	ErrStatusLocked        = errors.New("申请状态已锁定，无法再次变更")
	ErrUnknownStatus       = errors.New("未知的申请状态")
	ErrCommentRequired     = errors.New("变更为处理中时必须填写评论")
	ErrDesignImageRequired = errors.New("变更为已完成时必须上传设计图")
)

// Request 描述一次状态变更请求。
type Request struct {
	Target         model.ApplicationStatus
	Comment        string
	HasDesignImage bool
}

// Outcome 是允许的状态变更需要写入的结果。
type Outcome struct {
	From   model.ApplicationStatus
	Status model.ApplicationStatus
	// Comment 为 nil 时保留原有评论。
	Comment      *string
	AttachDesign bool
}

// Transition 根据当前状态和请求计算变更结果。
//
//	new -> in_progress  必须有评论
//	new -> completed    必须有设计图，评论可选
//	new -> new          员工备注，评论可选
//	其他状态            一律拒绝
func Transition(current model.ApplicationStatus, req Request) (Outcome, error) {
	if _, ok := model.ParseApplicationStatus(string(req.Target)); !ok {
		return Outcome{}, ErrUnknownStatus
	}
	if current != model.StatusNew {
		return Outcome{}, ErrStatusLocked
	}

	comment := strings.TrimSpace(req.Comment)
	out := Outcome{From: current, Status: req.Target}
	if comment != "" {
		out.Comment = &comment
	}

	switch req.Target {
	case model.StatusInProgress:
		if comment == "" {
			return Outcome{}, ErrCommentRequired
		}
	case model.StatusCompleted:
		if !req.HasDesignImage {
			return Outcome{}, ErrDesignImageRequired
		}
		out.AttachDesign = true
	}

	return out, nil
}
