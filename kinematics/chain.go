package kinematics

import (
	"github.com/quatfk/quatfk/spatialmath"
)

// ComposeChain returns identity*joints[0]*...*joints[index], the cumulative transform at the end of the
// joint prefix ending at index. Nothing is cached or renormalized between calls.
func ComposeChain(joints []spatialmath.DualQuaternion, index int) (spatialmath.DualQuaternion, error) {
	if index < 0 || index >= len(joints) {
		return spatialmath.DualQuaternion{}, NewChainIndexOutOfRangeError(index, len(joints))
	}
	return spatialmath.MulAll(joints[:index+1]...), nil
}

// ComposePrefixes returns the cumulative transform for every prefix of joints, in one left-to-right pass.
// Element i equals the result of ComposeChain(joints, i).
func ComposePrefixes(joints []spatialmath.DualQuaternion) []spatialmath.DualQuaternion {
	prefixes := make([]spatialmath.DualQuaternion, len(joints))
	acc := spatialmath.NewDualQuaternion()
	for i, dq := range joints {
		acc = spatialmath.Mul(acc, dq)
		prefixes[i] = acc
	}
	return prefixes
}
