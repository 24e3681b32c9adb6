package utils

// Index is a list of integer indices into a vector or flattened matrix
type Index []int

func NewRange(rmin, rmax int) (r Index) {
	r = make(Index, rmax-rmin+1)
	var ii int
	for i := rmin; i <= rmax; i++ {
		r[ii] = i
		ii++
	}
	return
}

func (I Index) Add(val int) (r Index) {
	r = make(Index, len(I))
	for i, ival := range I {
		r[i] = ival + val
	}
	return
}

func (I Index) Max() (max int) {
	max = I[0]
	for _, val := range I {
		if val > max {
			max = val
		}
	}
	return
}

func (I Index) Contains(val int) bool {
	for _, ival := range I {
		if ival == val {
			return true
		}
	}
	return false
}
