// Package executor validates and executes actions with permission checks,
// a confirmation gate, bounded history, and single-level undo.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/otelhelper"
)

const defaultHistorySize = 100

// Handler performs the effect of an action. Handlers are registered under an
// action's HandlerKey, never under instantiated ids.
type Handler func(ctx context.Context, params map[string]any, actx models.ActionContext) (*models.ActionResult, error)

// UsageRecorder receives a tick for every successful execution.
type UsageRecorder interface {
	RecordUsage(actionID string)
}

// AuditSink observes completed executions and undos. Implementations must not
// block; the executor calls them inline.
type AuditSink interface {
	ActionExecuted(ctx context.Context, entry *models.HistoryEntry)
	ActionUndone(ctx context.Context, entry *models.HistoryEntry)
}

// Options configures an Executor. Zero values fall back to defaults; Usage,
// Audit and Tracer may be nil.
type Options struct {
	HistorySize int
	Usage       UsageRecorder
	Audit       AuditSink
	Tracer      trace.Tracer
}

// Executor runs actions through a fixed pipeline: permission check,
// parameter validation, confirmation gate, handler dispatch. It never panics
// across its boundary; every outcome is an ActionResult.
type Executor struct {
	mu          sync.Mutex
	handlers    map[string]Handler
	history     []*models.HistoryEntry
	historySize int
	usage       UsageRecorder
	audit       AuditSink
	tracer      trace.Tracer
	logger      *slog.Logger
}

// NewExecutor creates an executor with no handlers registered.
func NewExecutor(logger *slog.Logger, opts Options) *Executor {
	size := opts.HistorySize
	if size <= 0 {
		size = defaultHistorySize
	}

	return &Executor{
		handlers:    make(map[string]Handler),
		historySize: size,
		usage:       opts.Usage,
		audit:       opts.Audit,
		tracer:      opts.Tracer,
		logger:      logger.With("module", "action-executor"),
	}
}

// RegisterHandler binds a handler to a handler key. Re-registering a key
// replaces the previous handler.
func (e *Executor) RegisterHandler(handlerKey string, handler Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.handlers[handlerKey] = handler
}

// HandlerKeys returns the registered handler keys.
func (e *Executor) HandlerKeys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := make([]string, 0, len(e.handlers))
	for k := range e.handlers {
		keys = append(keys, k)
	}

	return keys
}

// Execute runs one action request through the pipeline and always returns a
// result, never panicking.
func (e *Executor) Execute(ctx context.Context, req models.ActionRequest) *models.ActionResult {
	if e.tracer == nil {
		return e.execute(ctx, req)
	}

	attrs := []attribute.KeyValue{
		attribute.String(otelhelper.AdvisorIDKey, req.Context.UserID),
		attribute.String(otelhelper.SessionIDKey, req.Context.Session.SessionID),
	}
	if req.Action != nil {
		attrs = append(attrs,
			attribute.String(otelhelper.ActionIDKey, req.Action.ID),
			attribute.String(otelhelper.HandlerKeyKey, req.Action.HandlerKey),
		)
	}

	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "executor.execute", attrs...)
	defer span.End()

	result := e.execute(ctx, req)
	if !result.Success {
		otelhelper.SetError(span, errors.New(result.Error))
	}

	return result
}

func (e *Executor) execute(ctx context.Context, req models.ActionRequest) *models.ActionResult {
	start := time.Now()

	if req.Action == nil {
		return &models.ActionResult{
			Success:       false,
			Error:         "No action provided",
			ExecutionTime: time.Since(start),
		}
	}

	if req.ValidateOnly {
		return e.validateAction(req, start)
	}

	if err := checkPermissions(req.Action, req.Context); err != nil {
		return e.failure(req, err, start)
	}

	if err := validateParameters(req.Action, req.Parameters); err != nil {
		return e.failure(req, err, start)
	}

	if req.Action.RequiresConfirmation && !req.SkipConfirmation {
		return &models.ActionResult{
			Success:       false,
			Error:         "Action requires user confirmation",
			ExecutionTime: time.Since(start),
			Metadata:      map[string]any{"requiresConfirmation": true},
		}
	}

	e.mu.Lock()
	handler, ok := e.handlers[req.Action.HandlerKey]
	e.mu.Unlock()

	if !ok {
		err := newExecutionError(CodeNoHandler,
			fmt.Sprintf("No handler registered for action: %s", req.Action.ID),
			map[string]any{"handlerKey": req.Action.HandlerKey})

		return e.failure(req, err, start)
	}

	result := e.invoke(ctx, handler, req)
	result.ExecutionTime = time.Since(start)

	if result.Success {
		e.recordExecution(ctx, req, result)

		if e.usage != nil {
			e.usage.RecordUsage(req.Action.ID)
		}
	}

	return result
}

// invoke calls the handler with panic recovery so a misbehaving handler
// degrades to a failed result.
func (e *Executor) invoke(ctx context.Context, handler Handler, req models.ActionRequest) (result *models.ActionResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Action handler panicked", "action_id", req.Action.ID, "panic", r)

			result = &models.ActionResult{
				Success: false,
				Error:   fmt.Sprintf("Handler panic: %v", r),
			}
		}
	}()

	result, err := handler(ctx, req.Parameters, req.Context)
	if err != nil {
		e.logger.Error("Action execution failed", "action_id", req.Action.ID, "error", err)

		return &models.ActionResult{Success: false, Error: err.Error()}
	}

	if result == nil {
		result = &models.ActionResult{Success: true}
	}

	return result
}

func (e *Executor) validateAction(req models.ActionRequest, start time.Time) *models.ActionResult {
	if err := checkPermissions(req.Action, req.Context); err != nil {
		return e.failure(req, err, start)
	}

	if err := validateParameters(req.Action, req.Parameters); err != nil {
		return e.failure(req, err, start)
	}

	return &models.ActionResult{
		Success:       true,
		Data:          map[string]any{"valid": true},
		ExecutionTime: time.Since(start),
	}
}

func (e *Executor) failure(req models.ActionRequest, err *ExecutionError, start time.Time) *models.ActionResult {
	e.logger.Warn("Action rejected",
		"action_id", req.Action.ID, "code", err.Code, "error", err.Message)

	metadata := map[string]any{"errorCode": err.Code}
	if err.Details != nil {
		metadata["details"] = err.Details
	}

	if err.Code == CodeNoHandler {
		metadata["noHandler"] = true
	}

	return &models.ActionResult{
		Success:       false,
		Error:         err.Message,
		ExecutionTime: time.Since(start),
		Metadata:      metadata,
	}
}

func (e *Executor) recordExecution(ctx context.Context, req models.ActionRequest, result *models.ActionResult) {
	entry := &models.HistoryEntry{
		ID:         "exec_" + uuid.NewString(),
		Action:     req.Action,
		Parameters: req.Parameters,
		Context:    req.Context,
		Result:     result,
		Timestamp:  time.Now(),
	}

	e.mu.Lock()
	e.history = append([]*models.HistoryEntry{entry}, e.history...)
	if len(e.history) > e.historySize {
		e.history = e.history[:e.historySize]
	}
	e.mu.Unlock()

	if e.audit != nil {
		e.audit.ActionExecuted(ctx, entry)
	}
}

// History returns up to limit entries, newest first. limit <= 0 returns all.
func (e *Executor) History(limit int) []*models.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.history)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]*models.HistoryEntry, n)
	copy(out, e.history[:n])

	return out
}

// ClearHistory drops all recorded executions.
func (e *Executor) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history = nil
}

// UndoLast reverts the most recent successful execution. Only the newest
// entry is considered; older entries are never undone out of order.
func (e *Executor) UndoLast(ctx context.Context) *models.ActionResult {
	if e.tracer == nil {
		return e.undoLast(ctx)
	}

	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "executor.undo")
	defer span.End()

	result := e.undoLast(ctx)
	if !result.Success {
		otelhelper.SetError(span, errors.New(result.Error))
	}

	return result
}

func (e *Executor) undoLast(ctx context.Context) *models.ActionResult {
	start := time.Now()

	e.mu.Lock()
	var last *models.HistoryEntry
	if len(e.history) > 0 {
		last = e.history[0]
	}
	e.mu.Unlock()

	if last == nil {
		return &models.ActionResult{
			Success:       false,
			Error:         "No action to undo",
			ExecutionTime: time.Since(start),
		}
	}

	if last.Undone {
		return &models.ActionResult{
			Success:       false,
			Error:         "Action already undone",
			ExecutionTime: time.Since(start),
		}
	}

	if !last.Result.Undoable || last.Result.Undo == nil || last.Result.Undo.Apply == nil {
		return &models.ActionResult{
			Success:       false,
			Error:         "Action cannot be undone",
			ExecutionTime: time.Since(start),
		}
	}

	result, err := last.Result.Undo.Apply(ctx)
	if err != nil {
		e.logger.Error("Undo failed", "action_id", last.Action.ID, "error", err)

		return &models.ActionResult{
			Success:       false,
			Error:         err.Error(),
			ExecutionTime: time.Since(start),
		}
	}

	last.Undone = true

	if e.audit != nil {
		e.audit.ActionUndone(ctx, last)
	}

	if result == nil {
		result = &models.ActionResult{Success: true}
	}

	result.ExecutionTime = time.Since(start)

	return result
}

func checkPermissions(action *models.Action, actx models.ActionContext) *ExecutionError {
	if action.RequiredPermission == "" {
		return nil
	}

	if !actx.HasPermission(action.RequiredPermission) {
		return newExecutionError(CodePermissionDenied,
			fmt.Sprintf("Insufficient permissions. Required: %s", action.RequiredPermission),
			map[string]any{
				"required":  action.RequiredPermission,
				"available": actx.Permissions,
			})
	}

	return nil
}

func validateParameters(action *models.Action, params map[string]any) *ExecutionError {
	for _, param := range action.Parameters {
		value, present := params[param.Name]

		if param.Required && (!present || value == nil) {
			return newExecutionError(CodeMissingParameter,
				fmt.Sprintf("Required parameter missing: %s", param.Name),
				map[string]any{"parameter": param.Name})
		}

		if !present || value == nil {
			continue
		}

		if err := validateParameterType(param, value); err != nil {
			return err
		}

		if err := validateParameterConstraints(param, value); err != nil {
			return err
		}
	}

	for _, rule := range action.Validation {
		if err := applyValidationRule(rule, params); err != nil {
			return err
		}
	}

	return nil
}

func validateParameterType(param models.ActionParameter, value any) *ExecutionError {
	ok := true

	switch param.Type {
	case models.ParameterString:
		_, ok = value.(string)
	case models.ParameterBoolean:
		_, ok = value.(bool)
	case models.ParameterNumber:
		_, ok = asNumber(value)
	case models.ParameterObject:
		_, ok = value.(map[string]any)
	case models.ParameterArray:
		_, ok = value.([]any)
	case models.ParameterDate:
		switch v := value.(type) {
		case time.Time:
		case string:
			_, err := time.Parse(time.RFC3339, v)
			ok = err == nil
		default:
			ok = false
		}
	}

	if !ok {
		return newExecutionError(CodeInvalidType,
			fmt.Sprintf("Parameter %s has invalid type", param.Name),
			map[string]any{
				"parameter": param.Name,
				"expected":  string(param.Type),
				"actual":    fmt.Sprintf("%T", value),
			})
	}

	return nil
}

func validateParameterConstraints(param models.ActionParameter, value any) *ExecutionError {
	c := param.Constraints
	if c == nil {
		return nil
	}

	if len(c.Enum) > 0 && !enumContains(c.Enum, value) {
		return newExecutionError(CodeInvalidValue,
			fmt.Sprintf("Parameter %s must be one of: %s", param.Name, joinEnum(c.Enum)),
			map[string]any{"parameter": param.Name, "allowed": c.Enum, "actual": value})
	}

	if num, ok := asNumber(value); ok {
		if c.Min != nil && num < *c.Min {
			return newExecutionError(CodeValueTooLow,
				fmt.Sprintf("Parameter %s must be >= %v", param.Name, *c.Min),
				map[string]any{"parameter": param.Name, "min": *c.Min, "actual": num})
		}

		if c.Max != nil && num > *c.Max {
			return newExecutionError(CodeValueTooHigh,
				fmt.Sprintf("Parameter %s must be <= %v", param.Name, *c.Max),
				map[string]any{"parameter": param.Name, "max": *c.Max, "actual": num})
		}
	}

	if str, ok := value.(string); ok && c.Pattern != "" {
		re, err := regexp.Compile(c.Pattern)
		if err != nil || !re.MatchString(str) {
			return newExecutionError(CodeInvalidFormat,
				fmt.Sprintf("Parameter %s does not match required pattern", param.Name),
				map[string]any{"parameter": param.Name, "pattern": c.Pattern})
		}
	}

	if c.Custom != nil && !c.Custom(value) {
		return newExecutionError(CodeCustomValidationFailed,
			fmt.Sprintf("Parameter %s failed custom validation", param.Name),
			map[string]any{"parameter": param.Name})
	}

	return nil
}

func applyValidationRule(rule models.ValidationRule, params map[string]any) *ExecutionError {
	value := params[rule.Field]

	switch rule.Type {
	case models.ValidationRequired:
		if value == nil {
			return newExecutionError(CodeValidationFailed, rule.Message,
				map[string]any{"field": rule.Field, "type": string(rule.Type)})
		}
	case models.ValidationCustom:
		if rule.Validate != nil && !rule.Validate(value) {
			return newExecutionError(CodeValidationFailed, rule.Message,
				map[string]any{"field": rule.Field, "type": string(rule.Type)})
		}
	}

	return nil
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}

	return 0, false
}

func enumContains(enum []any, value any) bool {
	for _, allowed := range enum {
		if allowed == value {
			return true
		}
	}

	return false
}

func joinEnum(enum []any) string {
	out := ""

	for i, v := range enum {
		if i > 0 {
			out += ", "
		}

		out += fmt.Sprintf("%v", v)
	}

	return out
}
