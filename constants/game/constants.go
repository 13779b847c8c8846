package game_constants

const DeckSize = 81
const CardAttributes = 4
const AttributeDomain = 3
const BoardTargetSize = 12
const MatchReward = 1 // points per certified match
