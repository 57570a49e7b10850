// Package geomfit provides the numerical core used by iterative curve
// approximation: linear-equation solvers that turn fitting equations into
// spline coefficients, and evaluator/search primitives that produce the
// fitting data those equations are assembled from.
//
// # Solvers
//
// Two solver families are provided. [LUDecompose] and its companions
// implement a dense direct solve: Crout LU decomposition with scaled partial
// pivoting, forward/backward substitution, and a multi-coordinate variant
// ([LUSolveVec]) that solves one right-hand side per spatial coordinate over
// a shared decomposition. [SolveCG] implements the Conjugate Gradient method
// over a compressed sparse row matrix, optionally preconditioned by a
// relaxed incomplete LU factorization ([SolveCG.PrecondRILU]); it is the
// appropriate choice for the large, sparse, ill-conditioned systems produced
// by least-squares spline fitting.
//
// The dense decomposition treats only exact zero pivots as singular. There
// is deliberately no near-singularity threshold: introducing one would
// silently change which systems get rejected.
//
// # Evaluators and search
//
// [EvalCurve] and [EvalCurveSet] describe curves the way a fitting driver
// wants to see them: evaluate a position (or a fixed-size set of positions)
// at a parameter, evaluate derivatives, report the parameter domain and
// space dimension, and answer whether a candidate approximation is within
// tolerance. The driver samples an evaluator, assembles a linear system from
// the samples, solves it, and asks [EvalCurve.ApproximationOK] whether to
// iterate further.
//
// [ClosestPoint] performs the iterative distance minimization the concrete
// evaluators are built on. [ProjectCurveAndCrossTan] and
// [CrossTangentOffset] are the two concrete evaluators: projection of a
// space curve and its cross-tangent curve onto a surface, and offsetting
// along a blended cross-tangent direction.
//
// Input curves and surfaces are consumed through the narrow [Curve] and
// [Surface] interfaces; any representation that can evaluate positions and
// derivatives can participate.
//
// All types are single-threaded. A [SolveCG] instance owns its attached
// matrix and must not be shared between concurrent solves; evaluators borrow
// their input curves for their own lifetime and never mutate them.
package geomfit
