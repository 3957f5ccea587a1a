package slots

import "sort"

// CandidateHours returns the start hours an operating window can host:
// opening, opening+3, ... while hour <= closing-2. Each screening occupies a
// 3-hour block and must finish within the window, so closing-2 is the last
// admissible start.
func CandidateHours(openingHour, closingHour int) []int {
	hours := []int{}
	for hour := openingHour; hour <= closingHour-2; hour += 3 {
		hours = append(hours, hour)
	}
	return hours
}

// FreeHours subtracts the booked hours from the candidate set and returns the
// remainder ascending. Booked hours outside the candidate set are ignored.
func FreeHours(candidates, booked []int) []int {
	taken := make(map[int]struct{}, len(booked))
	for _, hour := range booked {
		taken[hour] = struct{}{}
	}

	free := []int{}
	for _, hour := range candidates {
		if _, ok := taken[hour]; !ok {
			free = append(free, hour)
		}
	}
	sort.Ints(free)
	return free
}

// intersects reports whether any requested hour is present in the free set.
// Batch creation only demands some overlap, not that every hour is free; the
// composite unique index catches collisions at write time.
func intersects(requested, free []int) bool {
	set := make(map[int]struct{}, len(free))
	for _, hour := range free {
		set[hour] = struct{}{}
	}
	for _, hour := range requested {
		if _, ok := set[hour]; ok {
			return true
		}
	}
	return false
}
