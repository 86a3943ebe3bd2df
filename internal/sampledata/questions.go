// Package sampledata ships the built-in question set used to seed a fresh
// backend and to exercise the engine without one.
package sampledata

import "github.com/Kormazd/DevWeb/internal/domain"

// Questions returns a fresh copy of the sample set so callers can mutate it.
func Questions() []domain.Question {
	questions := make([]domain.Question, len(sampleQuestions))
	copy(questions, sampleQuestions)
	return questions
}

var sampleQuestions = []domain.Question{
	{
		ID:       1,
		Title:    "Quelle est la capitale de la France ?",
		Text:     "Choisissez la bonne réponse parmi les options suivantes.",
		Position: 1,
		Answers: []domain.Answer{
			{ID: 1, Text: "Londres", Position: 1},
			{ID: 2, Text: "Paris", IsCorrect: true, Position: 2},
			{ID: 3, Text: "Berlin", Position: 3},
			{ID: 4, Text: "Madrid", Position: 4},
		},
	},
	{
		ID:       2,
		Title:    "Quel est le plus grand océan du monde ?",
		Text:     "Réfléchissez bien avant de répondre.",
		Position: 2,
		Answers: []domain.Answer{
			{ID: 5, Text: "Atlantique", Position: 1},
			{ID: 6, Text: "Pacifique", IsCorrect: true, Position: 2},
			{ID: 7, Text: "Indien", Position: 3},
			{ID: 8, Text: "Arctique", Position: 4},
		},
	},
	{
		ID:       3,
		Title:    "Qui a peint la Joconde ?",
		Text:     "Cette œuvre d'art est très célèbre.",
		Position: 3,
		Answers: []domain.Answer{
			{ID: 9, Text: "Michel-Ange", Position: 1},
			{ID: 10, Text: "Léonard de Vinci", IsCorrect: true, Position: 2},
			{ID: 11, Text: "Picasso", Position: 3},
			{ID: 12, Text: "Van Gogh", Position: 4},
		},
	},
	{
		ID:       4,
		Title:    "Quel est le symbole chimique de l'or ?",
		Text:     "Pensez à la table périodique des éléments.",
		Position: 4,
		Answers: []domain.Answer{
			{ID: 13, Text: "Au", IsCorrect: true, Position: 1},
			{ID: 14, Text: "Ag", Position: 2},
			{ID: 15, Text: "Fe", Position: 3},
			{ID: 16, Text: "Cu", Position: 4},
		},
	},
	{
		ID:       5,
		Title:    "Dans quel pays se trouve la Tour Eiffel ?",
		Text:     "Ce monument est un symbole de ce pays.",
		Position: 5,
		Answers: []domain.Answer{
			{ID: 17, Text: "Italie", Position: 1},
			{ID: 18, Text: "France", IsCorrect: true, Position: 2},
			{ID: 19, Text: "Espagne", Position: 3},
			{ID: 20, Text: "Allemagne", Position: 4},
		},
	},
	{
		ID:       6,
		Title:    "Quel est le plus grand mammifère du monde ?",
		Text:     "Il vit dans l'océan.",
		Position: 6,
		Answers: []domain.Answer{
			{ID: 21, Text: "Éléphant", Position: 1},
			{ID: 22, Text: "Baleine bleue", IsCorrect: true, Position: 2},
			{ID: 23, Text: "Girafe", Position: 3},
			{ID: 24, Text: "Rhinocéros", Position: 4},
		},
	},
	{
		ID:       7,
		Title:    "Qui a écrit 'Roméo et Juliette' ?",
		Text:     "Cette pièce de théâtre est très célèbre.",
		Position: 7,
		Answers: []domain.Answer{
			{ID: 25, Text: "Molière", Position: 1},
			{ID: 26, Text: "Shakespeare", IsCorrect: true, Position: 2},
			{ID: 27, Text: "Victor Hugo", Position: 3},
			{ID: 28, Text: "Voltaire", Position: 4},
		},
	},
	{
		ID:       8,
		Title:    "Quel est le plus grand désert du monde ?",
		Text:     "Il se trouve en Afrique.",
		Position: 8,
		Answers: []domain.Answer{
			{ID: 29, Text: "Sahara", IsCorrect: true, Position: 1},
			{ID: 30, Text: "Gobi", Position: 2},
			{ID: 31, Text: "Kalahari", Position: 3},
			{ID: 32, Text: "Atacama", Position: 4},
		},
	},
}
