package errors

// MetaReason is the metadata key holding a Reason.
const MetaReason = "reason"

// Reason narrows a Code down to a specific layout failure.
type Reason string

// Layout failure reasons
const (
	ReasonPlacementExhausted Reason = "PLACEMENT_EXHAUSTED"
	ReasonDegenerateTriangle Reason = "DEGENERATE_TRIANGLE"
	ReasonPathNotFound       Reason = "PATH_NOT_FOUND"
	ReasonInvalidParameter   Reason = "INVALID_PARAMETER"
)

// WithReason tags the error with a reason.
func (e *Error) WithReason(r Reason) *Error {
	return e.WithMeta(MetaReason, string(r))
}

// GetReason returns the reason recorded on err, or "" if there is none.
func GetReason(err error) Reason {
	r, _ := GetMeta(err)[MetaReason].(string)
	return Reason(r)
}

// PlacementExhaustedf reports that a room could not be placed within the attempt cap.
// Fatal for the run.
func PlacementExhaustedf(format string, args ...any) *Error {
	return ResourceExhaustedf(format, args...).WithReason(ReasonPlacementExhausted)
}

// DegenerateTrianglef reports three collinear or coincident vertices.
func DegenerateTrianglef(format string, args ...any) *Error {
	return FailedPreconditionf(format, args...).WithReason(ReasonDegenerateTriangle)
}

// PathNotFoundf reports that no corridor connects two cells.
func PathNotFoundf(format string, args ...any) *Error {
	return NotFoundf(format, args...).WithReason(ReasonPathNotFound)
}

// InvalidParameterf reports a generation parameter outside its accepted range.
func InvalidParameterf(format string, args ...any) *Error {
	return InvalidArgumentf(format, args...).WithReason(ReasonInvalidParameter)
}

// IsPlacementExhausted checks if an error is a placement exhausted error
func IsPlacementExhausted(err error) bool {
	return IsResourceExhausted(err) && GetReason(err) == ReasonPlacementExhausted
}

// IsDegenerateTriangle checks if an error is a degenerate triangle error
func IsDegenerateTriangle(err error) bool {
	return IsFailedPrecondition(err) && GetReason(err) == ReasonDegenerateTriangle
}

// IsPathNotFound checks if an error is a path not found error
func IsPathNotFound(err error) bool {
	return IsNotFound(err) && GetReason(err) == ReasonPathNotFound
}

// IsInvalidParameter checks if an error is an invalid parameter error
func IsInvalidParameter(err error) bool {
	return IsInvalidArgument(err) && GetReason(err) == ReasonInvalidParameter
}
