// Package force implements a physics-based node layout.
//
// A [Simulation] treats nodes as particles: edges act as springs pulling
// their endpoints toward a target length, every pair of nodes repels with a
// force inversely proportional to the squared distance, a centering force
// keeps the layout around a fixed point, and a collision pass keeps the
// circles approximating node boxes from overlapping.
//
// # Temperature
//
// Every force is scaled by alpha, the simulation temperature. Each tick
// moves alpha toward alphaTarget by [Config.AlphaDecay]; velocities are
// damped by [Config.VelocityDecay]. When alpha falls below
// [Config.AlphaMin] the simulation stops. Dragging a node raises
// alphaTarget, so the layout keeps running for as long as a node is pinned.
//
// # Lifecycle
//
//	Initializing → Running ⇄ Settling → Stopped → (drag) Running
//
// [New] assigns starting coordinates (prior position, or a random point in
// the [Config.InitialWidth] × [Config.InitialHeight] area). [Simulation.Tick] advances one step.
// [Simulation.DragStart], [Simulation.DragMove] and [Simulation.DragEnd]
// pin and release nodes.
//
// # Ownership
//
// A Simulation is not safe for concurrent use. For frame-driven hosts,
// [Start] hands the simulation to a goroutine and returns a [Handle]: the
// handle is the only way to reach the running simulation, drag events are
// serialized through it, and every tick publishes a [Frame]. A settled
// handle idles until the next drag reheats it. Batch callers
// use [Run], which ticks synchronously until convergence.
//
// Cancelling either form keeps the last computed positions; nothing is
// rolled back.
package force
