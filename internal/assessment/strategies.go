package assessment

// CopingStrategies returns the guidance attached to an assessment at save
// time, keyed by its level.
func CopingStrategies(l Level) string {
	switch l {
	case LevelHigh:
		return "1. Seek professional counseling\n" +
			"2. Practice intensive stress-reduction techniques\n" +
			"3. Consider medical consultation"
	case LevelModerate:
		return "1. Regular exercise\n" +
			"2. Meditation and mindfulness\n" +
			"3. Balanced work-life routine"
	default:
		return "1. Maintain current healthy habits\n" +
			"2. Continue self-care practices\n" +
			"3. Stay socially connected"
	}
}
