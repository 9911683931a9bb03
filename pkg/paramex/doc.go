// Package paramex implements parameterized exceptions: structured errors that
// carry a numeric error code, a category, and substitution variables used to
// render a human-readable message from a template.
//
// Every exception has:
//   - A category: an integer namespace identifying the error family that a
//     subsystem owns (e.g., 0x0100 for a storage subsystem)
//   - An error code: an integer identifying the specific error within the category
//   - Optional indexed and/or named substitution variables
//   - A message template source consulted lazily when the message is rendered
//
// Categories are partitioned by convention among subsystems. The range
// 0x0000 ~ 0xFFFF is reserved for framework use; applications should pick
// category ids above FrameworkCategoryMax.
//
// Category ownership is enforced at construction time by a CategoryRegistry:
// a category may only ever be held by one exception family. A family is an
// exception type together with its subtypes, so a subtype may share its
// supertype's category; two unrelated types attempting to share a category is
// a programming error and fails with a CategoryConflictError.
//
// Example usage:
//
//	orderType := paramex.NewType("OrderError")
//	templates := paramex.TemplateMap{
//		{Category: 10, ErrorCode: 1}: "order {orderId} rejected: {reason}",
//	}
//
//	b, err := paramex.NewBuilder(orderType, 10, templates)
//	if err != nil {
//		// category negative or template source missing
//	}
//	ex, err := b.ErrorCode(1).
//		NamedVariables(map[string]any{"orderId": "A-17", "reason": "oversized"}).
//		Build()
//
//	fmt.Println(ex.Message()) // order A-17 rejected: oversized
//	fmt.Println(paramex.DebugString(ex))
package paramex
