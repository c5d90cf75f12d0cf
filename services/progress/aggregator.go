package progress

import (
	"strconv"

	progressModels "lms/models/progress"
)

// Read-side percentage computations. All results are formatted to exactly two
// decimal places because the dashboard consumes them as strings; degenerate
// zero-division cases return "0.00" rather than an error.

// FormatPercent renders a percentage value the way the API has always done
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ModulePercentValue returns the share of passed videos in a module
func ModulePercentValue(mp *progressModels.ModuleProgress) float64 {
	if len(mp.Videos) == 0 {
		return 0
	}
	completed := 0
	for _, v := range mp.Videos {
		if v.Pass {
			completed++
		}
	}
	return float64(completed) / float64(len(mp.Videos)) * 100
}

// ComputeModulePercentage returns the module's video completion percentage
func ComputeModulePercentage(mp *progressModels.ModuleProgress) string {
	return FormatPercent(ModulePercentValue(mp))
}

// TrainingPercentValue averages the module-pass ratio and the overall
// video-pass ratio. The two-ratio average (not a single flattened ratio) is
// what both dashboard call sites expect; do not "simplify" it.
func TrainingPercentValue(tp *progressModels.TrainingProgress) float64 {
	if len(tp.Modules) == 0 {
		return 0
	}

	passedModules := 0
	totalVideos := 0
	passedVideos := 0
	for _, m := range tp.Modules {
		if m.Pass {
			passedModules++
		}
		totalVideos += len(m.Videos)
		for _, v := range m.Videos {
			if v.Pass {
				passedVideos++
			}
		}
	}

	modulePct := float64(passedModules) / float64(len(tp.Modules)) * 100
	videoPct := float64(0)
	if totalVideos > 0 {
		videoPct = float64(passedVideos) / float64(totalVideos) * 100
	}

	return (modulePct + videoPct) / 2
}

// ComputeTrainingPercentage returns the training-level completion percentage
func ComputeTrainingPercentage(tp *progressModels.TrainingProgress) string {
	return FormatPercent(TrainingPercentValue(tp))
}

// OverallPercentValue is the arithmetic mean of per-training percentages
func OverallPercentValue(trainingPercentages []float64) float64 {
	if len(trainingPercentages) == 0 {
		return 0
	}
	sum := float64(0)
	for _, p := range trainingPercentages {
		sum += p
	}
	return sum / float64(len(trainingPercentages))
}

// ComputeUserOverallPercentage returns the user's mean completion percentage
func ComputeUserOverallPercentage(trainingPercentages []float64) string {
	return FormatPercent(OverallPercentValue(trainingPercentages))
}
