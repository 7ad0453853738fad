// Package log provides the leveled, printf-style logger used by the podcast pipeline.
//
// Two implementations are provided: DefaultLogger, built on the standard
// library's log package, and GologLogger, built on kataras/golog and used by
// the podcaster command. Both satisfy Logger and filter by LogLevel.
//
// A package-level logger backs the Debug, Info, Warn and Error helpers so
// stages can log without threading a logger through every call:
//
//	log.SetDefaultLogger(log.NewPipelineLogger(os.Stderr, log.LogLevelDebug))
//	log.Info("research finished with %d sources", n)
package log
