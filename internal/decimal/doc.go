// Package decimal holds the arbitrary-precision number plumbing shared by the
// interval and fuzzy packages.
//
// All other internal packages import decimal; decimal imports nothing internal.
//
// Key design constraints:
//   - Every rounded result keeps Precision significant digits, applied the same
//     way at every operation boundary so error does not drift across chains.
//   - Lower bounds round with Floor, upper bounds with Ceiling, scalar results
//     with Nearest (half-even).
//   - Only finite values exist: NaN and Infinity are rejected by Parse.
//   - Display is plain notation without trailing zeros, never "-0".
package decimal
