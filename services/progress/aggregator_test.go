package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	progressModels "lms/models/progress"
)

func buildTree(modules ...[]bool) *progressModels.TrainingProgress {
	tp := &progressModels.TrainingProgress{}
	for _, videoPasses := range modules {
		mp := progressModels.ModuleProgress{}
		allPass := len(videoPasses) > 0
		for _, pass := range videoPasses {
			mp.Videos = append(mp.Videos, progressModels.VideoProgress{Pass: pass})
			if !pass {
				allPass = false
			}
		}
		mp.Pass = allPass
		tp.Modules = append(tp.Modules, mp)
	}
	return tp
}

func TestComputeModulePercentage(t *testing.T) {
	tests := []struct {
		name   string
		passes []bool
		want   string
	}{
		{"no videos", nil, "0.00"},
		{"none passed", []bool{false, false}, "0.00"},
		{"half passed", []bool{true, false}, "50.00"},
		{"all passed", []bool{true, true, true}, "100.00"},
		{"one of three", []bool{true, false, false}, "33.33"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mp := &progressModels.ModuleProgress{}
			for _, pass := range tt.passes {
				mp.Videos = append(mp.Videos, progressModels.VideoProgress{Pass: pass})
			}
			assert.Equal(t, tt.want, ComputeModulePercentage(mp))
		})
	}
}

func TestComputeTrainingPercentage(t *testing.T) {
	t.Run("zero modules", func(t *testing.T) {
		assert.Equal(t, "0.00", ComputeTrainingPercentage(buildTree()))
	})

	t.Run("one module half done is 25", func(t *testing.T) {
		// 0% modules passed, 50% videos passed -> (0+50)/2
		assert.Equal(t, "25.00", ComputeTrainingPercentage(buildTree([]bool{true, false})))
	})

	t.Run("everything passed is 100", func(t *testing.T) {
		assert.Equal(t, "100.00", ComputeTrainingPercentage(buildTree([]bool{true, true})))
	})

	t.Run("two modules one complete", func(t *testing.T) {
		// 50% modules passed, 75% videos passed -> 62.50
		tree := buildTree([]bool{true, true}, []bool{true, false})
		assert.Equal(t, "62.50", ComputeTrainingPercentage(tree))
	})

	t.Run("stays within bounds", func(t *testing.T) {
		trees := []*progressModels.TrainingProgress{
			buildTree(),
			buildTree([]bool{}),
			buildTree([]bool{false}),
			buildTree([]bool{true}),
			buildTree([]bool{true, true}, []bool{false}, []bool{true, false, false}),
		}
		for _, tree := range trees {
			v := TrainingPercentValue(tree)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
	})
}

func TestComputeUserOverallPercentage(t *testing.T) {
	assert.Equal(t, "0.00", ComputeUserOverallPercentage(nil))
	assert.Equal(t, "50.00", ComputeUserOverallPercentage([]float64{100, 0}))
	assert.Equal(t, "41.67", ComputeUserOverallPercentage([]float64{25, 50, 50}))
}
