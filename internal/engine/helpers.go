package engine

import "strconv"

// Log line builders. The battle log is narration only; nothing parses it.

func openingLine(player, opponent string) string {
	return "Battle start! " + player + " vs " + opponent + "!"
}

func usedLine(attacker, move string) string {
	return attacker + " used " + move + "!"
}

func missedLine(attacker string) string {
	return attacker + " missed!"
}

// damageLine reports damage and appends the critical and effectiveness
// annotations, which may both appear.
func damageLine(defender string, out Outcome) string {
	msg := defender + " took " + strconv.Itoa(out.Damage) + " damage!"
	if out.Critical {
		msg += " Critical Hit!"
	}
	switch out.Effectiveness {
	case TagSuper:
		msg += " It's super effective!"
	case TagWeak:
		msg += " It's not very effective..."
	}
	return msg
}

func healLine(attacker string, amount int) string {
	return attacker + " restored " + strconv.Itoa(amount) + " HP!"
}

func victoryLine(opponent string) string {
	return opponent + " fainted! You win!"
}

func defeatLine(player string) string {
	return player + " fainted... You lose!"
}
