package dice

// CountFace returns how many of the faces equal face.
func CountFace(faces [Count]int, face int) int {
	n := 0
	for _, f := range faces {
		if f == face {
			n++
		}
	}
	return n
}

// CategoryPoints returns the upper-section score of category (0-based) for the
// given faces: the number of dice showing category+1 times that face value.
// Unthrown dice (face 0) never score.
func CategoryPoints(faces [Count]int, category int) int {
	face := category + 1
	if face < 1 || face > Sides {
		return 0
	}
	return CountFace(faces, face) * face
}
