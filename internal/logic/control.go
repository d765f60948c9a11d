package logic

// Evaluate applies the hysteresis band and the alarm thresholds to one reading.
//
// Outside the band [SetTemp-TempDiff, SetTemp+TempDiff] the mode decides which
// actuator runs and Lock is raised while it does; inside the band every actuator
// is off. Balance never drives Heat and Cool together.
// The alarm is only evaluated when AlarmEnabled, and is low otherwise.
func Evaluate(in Input) Outputs {
	var out Outputs
	diff := absDiff(in.SetTemp, in.Temp)

	if diff > in.TempDiff {
		switch in.Mode {
		case ModeHeat:
			if in.Temp <= in.SetTemp {
				out.Heat = true
				out.Lock = true
			}
		case ModeCool:
			if in.Temp >= in.SetTemp {
				out.Cool = true
				out.Lock = true
			}
		case ModeBalance:
			out.Lock = true
			if in.Temp < in.SetTemp {
				out.Heat = true
			} else {
				out.Cool = true
			}
		}
	}

	if in.AlarmEnabled {
		out.Alarm = diff > in.AlarmDiff || in.Temp > in.AlarmHigh || in.Temp < in.AlarmLow
	}

	return out
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
