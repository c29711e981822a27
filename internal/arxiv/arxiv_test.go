package arxiv

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleDump = `008
Intro to CS is the best course ever
2021-09-01

Ponce,Marcelo
Tafliovich,Anya Y.

We present clear evidence that Introduction to
Computer Science is the best course.
END
031
Calculus is the best course ever

2021-09-02
Breuss,Nataliya

We discuss the reasons why Calculus I
is the best course.
END
067
Discrete Mathematics is the best course ever
2021-09-02
2021-10-01
Pancer,Richard
Bretscher,Anna

We explain why Discrete Mathematics is the best course of all times.
END
827
University of Toronto is the best university
2021-08-20
2021-10-02
Bretscher,Anna
Ponce,Marcelo
Tafliovich,Anya Y.

We show a formal proof that the University of
Toronto is the best university.
END
042

2021-05-04
2021-05-05

This is a very strange article with no title
and no authors.
END
`

var (
	ponce      = Author{Last: "Ponce", First: "Marcelo"}
	tafliovich = Author{Last: "Tafliovich", First: "Anya Y."}
	breuss     = Author{Last: "Breuss", First: "Nataliya"}
	bretscher  = Author{Last: "Bretscher", First: "Anna"}
	pancer     = Author{Last: "Pancer", First: "Richard"}
)

func example(t *testing.T) Arxiv {
	t.Helper()
	x, err := Read(strings.NewReader(exampleDump))
	require.NoError(t, err)
	return x
}

func TestRead(t *testing.T) {
	got := example(t)

	want := Arxiv{
		"008": {
			ID: "008", Title: "Intro to CS is the best course ever", Created: "2021-09-01",
			Authors:  []Author{ponce, tafliovich},
			Abstract: "We present clear evidence that Introduction to\nComputer Science is the best course.",
		},
		"031": {
			ID: "031", Title: "Calculus is the best course ever", Modified: "2021-09-02",
			Authors:  []Author{breuss},
			Abstract: "We discuss the reasons why Calculus I\nis the best course.",
		},
		"067": {
			ID: "067", Title: "Discrete Mathematics is the best course ever",
			Created: "2021-09-02", Modified: "2021-10-01",
			Authors:  []Author{bretscher, pancer},
			Abstract: "We explain why Discrete Mathematics is the best course of all times.",
		},
		"827": {
			ID: "827", Title: "University of Toronto is the best university",
			Created: "2021-08-20", Modified: "2021-10-02",
			Authors:  []Author{bretscher, ponce, tafliovich},
			Abstract: "We show a formal proof that the University of\nToronto is the best university.",
		},
		"042": {
			ID: "042", Created: "2021-05-04", Modified: "2021-05-05",
			Authors:  []Author{},
			Abstract: "This is a very strange article with no title\nand no authors.",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []string{
		"008\ntitle\nEND\n",
		"008\ntitle\n2021-09-01\n\nNoComma\n\nabstract\nEND\n",
		"\ntitle\n2021-09-01\n\n\nabstract\nEND\n",
	}
	for _, given := range tests {
		_, err := Read(strings.NewReader(given))
		assert.Error(t, err, given)
	}
}

func TestRead_MissingFinalEnd(t *testing.T) {
	x, err := Read(strings.NewReader("008\ntitle\n2021-09-01\n\nPonce,Marcelo\n\nabstract\n"))
	require.NoError(t, err)
	require.Contains(t, x, "008")
	assert.Equal(t, []Author{ponce}, x["008"].Authors)
	assert.Equal(t, "abstract", x["008"].Abstract)
}

func TestRead_LongAbstractLine(t *testing.T) {
	abstract := strings.Repeat("word ", 40000) + "end"
	x, err := Read(strings.NewReader("008\ntitle\n2021-09-01\n\nPonce,Marcelo\n\n" + abstract + "\nEND\n"))
	require.NoError(t, err)
	require.Contains(t, x, "008")
	assert.Equal(t, abstract, x["008"].Abstract)
}

func TestRead_Empty(t *testing.T) {
	x, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, x)
}

func TestArxiv_AuthorsToArticles(t *testing.T) {
	expected := map[Author][]string{
		ponce:      {"008", "827"},
		tafliovich: {"008", "827"},
		bretscher:  {"067", "827"},
		breuss:     {"031"},
		pancer:     {"067"},
	}
	assert.Equal(t, expected, example(t).AuthorsToArticles())
}

func TestArxiv_Coauthors(t *testing.T) {
	x := example(t)

	tests := []struct {
		given    Author
		expected []Author
	}{
		{given: tafliovich, expected: []Author{bretscher, ponce}},
		{given: bretscher, expected: []Author{pancer, ponce, tafliovich}},
		{given: ponce, expected: []Author{bretscher, tafliovich}},
		{given: breuss, expected: []Author{}},
		{given: Author{Last: "Nobody"}, expected: []Author{}},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, x.Coauthors(test.given), test.given.String())
	}
}

func TestArxiv_MostPublished(t *testing.T) {
	x := example(t)
	assert.Equal(t, []Author{bretscher, ponce, tafliovich}, x.MostPublished())

	assert.Equal(t, []Author{}, Arxiv{}.MostPublished())
	assert.Equal(t, []Author{}, Arxiv{"042": x["042"]}.MostPublished())
	assert.Equal(t, []Author{breuss}, Arxiv{"031": x["031"]}.MostPublished())
	assert.Equal(t, []Author{bretscher, pancer, ponce, tafliovich},
		Arxiv{"008": x["008"], "067": x["067"]}.MostPublished())
	assert.Equal(t, []Author{bretscher}, Arxiv{"067": x["067"], "827": x["827"]}.MostPublished())
}

func TestArxiv_SuggestCollaborators(t *testing.T) {
	x := example(t)

	tests := []struct {
		given    Author
		expected []Author
	}{
		{given: pancer, expected: []Author{ponce, tafliovich}},
		{given: tafliovich, expected: []Author{pancer}},
		{given: breuss, expected: []Author{}},
		{given: ponce, expected: []Author{pancer}},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, x.SuggestCollaborators(test.given), test.given.String())
	}
}

func TestArxiv_KeepProlific(t *testing.T) {
	x := example(t)
	x.KeepProlific(2)

	assert.Len(t, x, 3)
	assert.Contains(t, x, "008")
	assert.Contains(t, x, "067")
	assert.Contains(t, x, "827")

	x = example(t)
	x.KeepProlific(0)
	assert.Len(t, x, 4, "articles without authors never survive")

	x = example(t)
	x.KeepProlific(3)
	assert.Empty(t, x)
}

func TestParseAuthor(t *testing.T) {
	got, err := ParseAuthor(" Tafliovich , Anya Y. ")
	require.NoError(t, err)
	assert.Equal(t, tafliovich, got)
	assert.Equal(t, "Tafliovich,Anya Y.", got.String())

	_, err = ParseAuthor("Tafliovich")
	assert.Error(t, err)
}
