package logic

import "github.com/KamisAyaka/Crowdfunding/internal/model"

// ClassifyCompletion 从结束事件和失败事件推导项目终态。
// 失败事件是链上的后置修正（例如治理判定失败），无论到达顺序如何，
// 它都覆盖结束事件里的成功标记。
func ClassifyCompletion(completed *model.ProjectCompletedEvent, failed *model.ProjectFailedEvent) (isCompleted bool, isSuccessful bool) {
	isCompleted = completed != nil
	isSuccessful = isCompleted && completed.IsSuccessful && failed == nil
	return isCompleted, isSuccessful
}
