package world

type BlockType = uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
)

// Blocks within this many voxels below an exposed surface are dirt.
const dirtDepth = 3

// blockForDepth picks a block type by depth below the nearest air above.
// depth 0 is the exposed top voxel.
func blockForDepth(depth int) BlockType {
	switch {
	case depth == 0:
		return BlockTypeGrass
	case depth <= dirtDepth:
		return BlockTypeDirt
	default:
		return BlockTypeStone
	}
}
