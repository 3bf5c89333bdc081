package utils

import "time"

// ZodiacSign returns the western zodiac sign for a birth date.
func ZodiacSign(birthDate time.Time) string {
	month := birthDate.Month()
	day := birthDate.Day()

	switch month {
	case time.January:
		if day <= 19 {
			return "capricorn"
		}
		return "aquarius"
	case time.February:
		if day <= 18 {
			return "aquarius"
		}
		return "pisces"
	case time.March:
		if day <= 20 {
			return "pisces"
		}
		return "aries"
	case time.April:
		if day <= 19 {
			return "aries"
		}
		return "taurus"
	case time.May:
		if day <= 20 {
			return "taurus"
		}
		return "gemini"
	case time.June:
		if day <= 20 {
			return "gemini"
		}
		return "cancer"
	case time.July:
		if day <= 22 {
			return "cancer"
		}
		return "leo"
	case time.August:
		if day <= 22 {
			return "leo"
		}
		return "virgo"
	case time.September:
		if day <= 22 {
			return "virgo"
		}
		return "libra"
	case time.October:
		if day <= 22 {
			return "libra"
		}
		return "scorpio"
	case time.November:
		if day <= 21 {
			return "scorpio"
		}
		return "sagittarius"
	default:
		if day <= 21 {
			return "sagittarius"
		}
		return "capricorn"
	}
}
