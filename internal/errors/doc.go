// Package errors provides structured errors for dungeon-api.
//
// An Error carries a Code, a user-facing message, an optional cause and a
// metadata map. Codes map directly to gRPC status codes, so handlers can
// return ToGRPCError(err) without inspecting it.
//
// # Basic Usage
//
//	err := errors.NotFoundf("dungeon %s not found", id)
//	err := errors.InvalidArgument("dungeon_id is required").WithMeta("field", "dungeon_id")
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load dungeon")
//	}
//
// Wrap keeps the inner code and metadata; WrapWithCode replaces the code.
//
// # Layout Reasons
//
// Layout generation failures share generic codes with other errors, so they
// carry a Reason in their metadata:
//
//	PLACEMENT_EXHAUSTED  RESOURCE_EXHAUSTED  fatal, no partial dungeon
//	DEGENERATE_TRIANGLE  FAILED_PRECONDITION skipped by the triangulator
//	PATH_NOT_FOUND       NOT_FOUND           corridor skipped, run continues
//	INVALID_PARAMETER    INVALID_ARGUMENT    fatal, rejected up front
//
// Use the IsPlacementExhausted family to test for them.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("dungeon_id", input.DungeonID, vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
package errors
