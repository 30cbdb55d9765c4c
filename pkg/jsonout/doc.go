/*
Package jsonout repairs and validates model output in strict-JSON mode.

Validation is two-tiered. Without a shape, text is acceptable iff it
parses as JSON; a single repair pass (stripping trailing commas before
closing braces and brackets) is attempted on parse failure, then parsing
is retried once. With a shape, the parsed root must additionally be an
object whose keys are a superset of the shape's keys, each value matching
its declared type.

Shapes are a closed set of primitives (string, integer, float, boolean,
and object-with-subshape) interpreted by an explicit matcher rather than
by reflection on runtime types.

Repair is applied at most once and never recurses, bounding worst-case
cost to two parse attempts and one regex pass.
*/
package jsonout
