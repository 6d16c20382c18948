// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package prog provides a stack-safe, effect-agnostic program algebra.
//
// A [Program] is a trampolined description of a computation over an opaque
// effect family F: pure leaves, effect invocations, and bind nodes joining a
// sub-program to a continuation over its [Outcome]. Programs are built
// without executing anything and are unrolled one step at a time, so chains
// of any length and any nesting run in constant stack. prog performs no I/O
// and no scheduling: a [Host] executes each effect when the driver asks.
//
// # Outcomes
//
// Every finished computation ends in one of three states:
//
//   - [Succeeded]: a value
//   - [Failed]: an error
//   - [Interrupted]: cooperative cancellation, with the caller's scope and an
//     optional deferred error
//
// Interruption is a value, never a signal. prog does not originate it; it
// propagates and classifies it through binds, translation and release.
//
// Outcome algebra:
//
//   - [Unit], [FromResult], [FromEither]: Constructors
//   - [Outcome.Classify]: ExitCompleted, ExitErrored or ExitCanceled
//   - [MapOutcome], [FlatMapOutcome]: Monad operations (short-circuiting)
//   - [RecoverWith]: Recover a failure
//   - [IterateUntilDone]: Stack-safe tail-recursive iteration
//
// # Program Algebra
//
// Constructors never execute effects:
//
//   - [Pure], [Fail], [Interrupt], [Done]: Finished leaves
//   - [Perform]: Invoke one effect
//   - [Suspend]: Defer construction until unrolled
//
// Sequencing and error handling:
//
//   - [TransformWith]: Continue with the full outcome (the primitive)
//   - [FlatMap], [Map], [Then]: Continue on success
//   - [HandleErrorWith]: Continue on failure
//   - [InjectFailure]: Inject an error into an in-flight program
//
// Every caller-supplied function is guarded: a panic becomes a [PanicError]
// failure at the point of invocation and flows through the program like any
// other failure.
//
// # Unrolling
//
// [Program.View] unrolls a program until it is finished or pending on exactly
// one effect. The unrolling loop re-associates left-nested binds,
//
//	Bind(Bind(w, g), f)  →  Bind(w, x => Bind(g(x), f))
//
// and never recurses, so its stack usage is independent of program depth.
//
//   - [View.Terminal]: The finished outcome
//   - [View.Step]: The pending effect and its one-shot [Continuation]
//   - [Continuation.Resume]: Feed the effect's outcome (panics on reuse)
//   - [Continuation.TryResume]: Non-panicking variant
//   - [Continuation.Discard]: Drop without resuming
//
// # Translation
//
// [Translate] reinterprets a program under another effect family, rewriting
// each effect lazily as it is reached.
//
// # Running
//
// [Run] and [RunOutcome] drive a program to completion against a [Host],
// executing each effect exactly once and in order. [HostFunc] adapts a
// function; package code.hybscloud.com/prog/host provides dispatching,
// logging, tracing and metrics hosts.
//
// # Resource Safety
//
//   - [Bracket]: Acquire, use, release with the exit case
//   - [Ensure]: Always run a finalizer
//   - [OnError]: Run cleanup only on failure
//
// Double faults are merged with [Combine] rather than one shadowing the other.
//
// # Example
//
//	type Console interface{ console() }
//	type ReadLine struct{}
//	type WriteLine struct{ Text string }
//
//	greet := prog.FlatMap(
//		prog.Perform[Console, string](ReadLine{}),
//		func(name string) prog.Program[Console, struct{}] {
//			return prog.Perform[Console, struct{}](WriteLine{Text: "hello, " + name})
//		},
//	)
//
//	_, _, err := prog.Run(ctx, greet, host)
package prog
