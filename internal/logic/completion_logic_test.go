package logic

import (
	"testing"

	"github.com/KamisAyaka/Crowdfunding/internal/model"
	"github.com/stretchr/testify/require"
)

func TestClassifyCompletion(t *testing.T) {
	t.Parallel()

	success := &model.ProjectCompletedEvent{ProjectID: "1", IsSuccessful: true}
	failure := &model.ProjectCompletedEvent{ProjectID: "1", IsSuccessful: false}
	failed := &model.ProjectFailedEvent{ProjectID: "1"}

	tests := []struct {
		name           string
		completed      *model.ProjectCompletedEvent
		failedEvent    *model.ProjectFailedEvent
		wantCompleted  bool
		wantSuccessful bool
	}{
		{"no events means in progress", nil, nil, false, false},
		{"successful completion", success, nil, true, true},
		{"unsuccessful completion", failure, nil, true, false},
		// 失败事件是后置修正，覆盖结束事件里的成功标记
		{"failure overrides success flag", success, failed, true, false},
		{"failure event alone does not complete", nil, failed, false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotCompleted, gotSuccessful := ClassifyCompletion(tt.completed, tt.failedEvent)
			require.Equal(t, tt.wantCompleted, gotCompleted)
			require.Equal(t, tt.wantSuccessful, gotSuccessful)
		})
	}
}
