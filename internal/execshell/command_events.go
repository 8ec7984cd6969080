package execshell

import "go.uber.org/zap"

const (
	logFieldCommandConstant          = "command"
	logFieldArgumentsConstant        = "arguments"
	logFieldWorkingDirectoryConstant = "working_directory"
	logFieldExitCodeConstant         = "exit_code"
	logFieldStandardErrorConstant    = "standard_error"
)

// CommandEventObserver receives lifecycle notifications for shell command execution.
type CommandEventObserver interface {
	// CommandStarted notifies observers that command execution is beginning.
	CommandStarted(command ShellCommand)
	// CommandCompleted notifies observers that command execution finished and supplies the result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports unexpected failures prior to receiving an execution result.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// structuredCommandEventLogger records command events as structured zap entries.
type structuredCommandEventLogger struct {
	logger    *zap.Logger
	formatter CommandMessageFormatter
}

func newStructuredCommandEventLogger(logger *zap.Logger) structuredCommandEventLogger {
	return structuredCommandEventLogger{logger: logger, formatter: CommandMessageFormatter{}}
}

func (eventLogger structuredCommandEventLogger) CommandStarted(command ShellCommand) {
	eventLogger.logger.Debug(eventLogger.formatter.BuildStartedMessage(command), commandFields(command)...)
}

func (eventLogger structuredCommandEventLogger) CommandCompleted(command ShellCommand, result ExecutionResult) {
	fields := append(commandFields(command), zap.Int(logFieldExitCodeConstant, result.ExitCode))
	if result.ExitCode == 0 {
		eventLogger.logger.Debug(eventLogger.formatter.BuildSuccessMessage(command), fields...)
		return
	}
	fields = append(fields, zap.String(logFieldStandardErrorConstant, result.StandardError))
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, result), fields...)
}

func (eventLogger structuredCommandEventLogger) CommandExecutionFailed(command ShellCommand, failure error) {
	fields := append(commandFields(command), zap.Error(failure))
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure), fields...)
}

func commandFields(command ShellCommand) []zap.Field {
	return []zap.Field{
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	}
}
