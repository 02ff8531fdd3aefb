package plcmodel

import "sort"

// ProjectStats summarizes a project's shape: POU counts by kind,
// variable counts by class, declared data types, and tasks.
type ProjectStats struct {
	PouCount       int
	Programs       int
	Functions      int
	FunctionBlocks int

	VariableCount    int
	VariablesByClass map[VariableClass]int

	DataTypes []string
	TaskCount int

	BodiesByLanguage map[string]int
}

// StatsFromProject computes summary statistics over the project.
func StatsFromProject(p *Project) ProjectStats {
	stats := ProjectStats{
		PouCount:         len(p.Pous),
		VariablesByClass: map[VariableClass]int{},
		BodiesByLanguage: map[string]int{},
		TaskCount:        len(p.Tasks),
	}

	for _, pou := range p.Pous {
		switch pou.Kind {
		case KindProgram:
			stats.Programs++
		case KindFunction:
			stats.Functions++
		case KindFunctionBlock:
			stats.FunctionBlocks++
		}
		for _, v := range pou.Interface.All() {
			stats.VariableCount++
			stats.VariablesByClass[v.Class]++
		}
		if pou.Body != nil {
			stats.BodiesByLanguage[pou.Body.Language()]++
		}
	}
	for _, v := range p.Globals {
		stats.VariableCount++
		stats.VariablesByClass[v.Class]++
	}

	seen := map[string]bool{}
	for _, t := range p.DataTypes {
		if !seen[t] {
			seen[t] = true
			stats.DataTypes = append(stats.DataTypes, t)
		}
	}
	sort.Strings(stats.DataTypes)

	return stats
}
