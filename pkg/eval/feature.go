package eval

import (
	. "github.com/ChizhovVadim/CheckersGo/pkg/common"
)

// FeatureFunc scores a board from the point of view of side.
type FeatureFunc func(b *Board, side Side) float64

type Feature struct {
	Tag           string
	Name          string
	Description   string
	DefaultWeight float64
	Fn            FeatureFunc
}

var features []Feature

func addFeature(tag, name string, defaultWeight float64, description string, fn FeatureFunc) int {
	features = append(features, Feature{
		Tag:           tag,
		Name:          name,
		Description:   description,
		DefaultWeight: defaultWeight,
		Fn:            fn,
	})
	return len(features) - 1
}

// Features returns a copy of the registered feature list in registration order.
func Features() []Feature {
	var result = make([]Feature, len(features))
	copy(result, features)
	return result
}

// DefaultActiveSize is the number of features scored at a time; the rest wait in reserve.
const DefaultActiveSize = 16

var (
	fPiece = addFeature("PIECE", "Piece Advantage", 4,
		"Material credit (2 per man, 3 per king) of the side minus that of the opponent.",
		piece)
	fAdv = addFeature("ADV", "Advancement", 1,
		"Credited with 1 for each man in the 5th and 6th rows counting from its own back row, debited with 1 for each man in the 3rd and 4th rows.",
		advancement)
	fApex = addFeature("APEX", "Apex", 1,
		"Debited with 1 if there are no kings on the board, either square 7 or 26 holds a man of the side, and neither holds an opponent piece.",
		apex)
	fBack = addFeature("BACK", "Back Row Bridge", 1,
		"Credited with 1 if the opponent has no kings and both bridge squares (1 and 3) of the side's back row are occupied by its pieces.",
		backRowBridge)
	fCent = addFeature("CENT", "Center Control I", 1,
		"Credited with 1 for each of the central squares 10, 11, 14, 15, 18, 19, 22 and 23 occupied by a man of the side.",
		centerControl)
	fCntr = addFeature("CNTR", "Center Control II", 1,
		"Credited with 1 for each of the central squares occupied by a piece of the side or to which a piece of the side can move.",
		centerControl2)
	fCorn = addFeature("CORN", "Double-Corner Credit", 1,
		"Credited with 1 if the side's material credit is 6 or less, the opponent is ahead in material, and the side can move into a double-corner square.",
		doubleCorner)
	fCramp = addFeature("CRAMP", "Cramp", 1,
		"Credited with 2 if the side occupies the cramping square (13) and square 9 or 14, while squares 17, 21, 22 and 25 are all occupied by the opponent. Squares are given for white and mirrored for black.",
		cramp)
	fDeny = addFeature("DENY", "Denial of Occupancy", 1,
		"Credited with 1 for each square counted by MOB on which a piece moved there could be captured without an exchange.",
		denial)
	fDia = addFeature("DIA", "Double Diagonal File", 1,
		"Credited with 1 for each piece of the side located in the diagonal files terminating in the double-corner squares.",
		doubleDiagonal)
	fDiav = addFeature("DIAV", "Diagonal Moment Value", 1,
		"Credited with 1/2 for each piece two files removed from the double-corner diagonals, 1 for each piece one file removed and 3/2 for each piece on them.",
		diagonalMoment)
	fDyke = addFeature("DYKE", "Dyke", 1,
		"Credited with 1 for each string of pieces of the side occupying three adjacent diagonal squares.",
		dyke)
	fExch = addFeature("EXCH", "Exchange", 1,
		"Credited with 1 for each square to which the side may advance a piece and in so doing force an exchange.",
		exchange)
	fExpos = addFeature("EXPOS", "Exposure", 1,
		"Credited with 1 for each piece of the side flanked along one or the other diagonal by two empty squares.",
		exposure)
	fFork = addFeature("FORK", "Threat of Fork", 1,
		"Credited with 1 for each move after which the moved piece threatens two opponent pieces standing side by side in one row.",
		fork)
	fGap = addFeature("GAP", "Gap", 1,
		"Credited with 1 for each single empty square that separates two pieces of the side along a diagonal, or a piece of the side from the edge of the board.",
		gap)
	fGuard = addFeature("GUARD", "Back Row Control", 1,
		"Credited with 1 if the opponent has no kings and either the bridge or the triangle of Oreo is occupied by pieces of the side.",
		backRowControl)
	fHole = addFeature("HOLE", "Hole", 1,
		"Credited with 1 for each empty square that is surrounded by three or more pieces of the side.",
		hole)
	fKcent = addFeature("KCENT", "King Center Control", 1,
		"Credited with 1 for each of the central squares occupied by a king of the side.",
		kingCenterControl)
	fMob = addFeature("MOB", "Total Mobility", 1,
		"Credited with 1 for each square to which the side could move one or more pieces in the normal fashion, disregarding available jumps.",
		mobility)
	fMobil = addFeature("MOBIL", "Undenied Mobility", 1,
		"Credited with the difference between MOB and DENY.",
		undeniedMobility)
	fMove = addFeature("MOVE", "Move", 1,
		"Credited with 1 if material is even with a total credit below 24 and an odd number of pieces stand in the move system, the files starting with squares 1 to 4.",
		moveSystem)
	fNode = addFeature("NODE", "Node", 1,
		"Credited with 1 for each piece of the side surrounded by at least three empty squares.",
		node)
	fOreo = addFeature("OREO", "Triangle of Oreo", 1,
		"Credited with 1 if the opponent has no kings and the triangle of Oreo (squares 2, 3 and 7) is occupied by pieces of the side.",
		triangleOfOreo)
	fPole = addFeature("POLE", "Pole", 1,
		"Credited with 1 for each man of the side completely surrounded by empty squares.",
		pole)
	fThret = addFeature("THRET", "Threat", 1,
		"Credited with 1 for each square to which a piece of the side may be moved and in so doing threaten the capture of an opponent piece.",
		threat)
)
