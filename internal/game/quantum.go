package game

import "math"

// driftQuantumStates evolves every unit's latent state with Gaussian
// noise and renormalizes it to unit length. The drift has no direct
// gameplay effect; it feeds the measure action's flavor and spectators.
func (e *Engine) driftQuantumStates() {
	mean := e.cfg.Quantum.NoiseMean
	std := e.cfg.Quantum.NoiseStd

	for _, u := range e.units {
		u.QuantumState[0] += e.rng.NormFloat64()*std + mean
		u.QuantumState[1] += e.rng.NormFloat64()*std + mean

		norm := math.Hypot(u.QuantumState[0], u.QuantumState[1])
		if norm > 0 {
			u.QuantumState[0] /= norm
			u.QuantumState[1] /= norm
		}
	}
}
