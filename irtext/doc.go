// Package irtext reads and writes the textual form of the tachyon IR.
//
// The format is line oriented. A module is a sequence of function
// definitions, declarations and directives; ';' starts a comment.
//
//	module example
//
//	func @kern(n) kernel {
//	entry:
//	  i = op const 0
//	  br body
//	body [tachyon.loop.workitem]:
//	  call @helper(i)
//	  i = op add i one
//	  c = op lt i n
//	  condbr c, body, exit
//	exit:
//	  ret
//	}
//
//	declare @sync splitter
//	barrier @__tachyon_splitter_barrier
//
// Function and callee names carry a leading '@'; block labels are bare
// words and must be unique within a function. The kernel, splitter and
// intrinsic attribute words do not live in the IR itself: kernel and
// splitter populate the Info side table consumed by annotation.NewSet,
// intrinsic sets the function's intrinsic flag. Square brackets after a
// label list block annotations verbatim.
//
// Calls to names with no definition or declaration are declared
// implicitly, mirroring how a linker-visible external symbol would appear
// in a real compilation unit.
package irtext
