package bookingapi

// TimeSlots returns the fixed hourly slots the panel offers for every branch.
// The booking API has no availability endpoint the panel can use, so the
// slot grid is a panel constant and conflicts surface at submission time.
func TimeSlots() []string {
	return []string{
		"7:00 am - 8:00 am",
		"8:00 am - 9:00 am",
		"9:00 am - 10:00 am",
		"10:00 am - 11:00 am",
		"11:00 am - 12:00 pm",
		"12:00 pm - 1:00 pm",
		"1:00 pm - 2:00 pm",
		"2:00 pm - 3:00 pm",
		"3:00 pm - 4:00 pm",
		"4:00 pm - 5:00 pm",
		"5:00 pm - 6:00 pm",
	}
}
