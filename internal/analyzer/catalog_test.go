package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libwebdoc/internal/model"
	"libwebdoc/internal/params"
	"libwebdoc/internal/phpparser"
)

const userAPISource = `<?php
namespace App\Api;

class UserAPI extends API
{
    /**
     * Returns one user.
     */
    public function GET_userInfo()
    {
        $id = $this->param('id', v::intVal()); // user id
        return $this->users->find($id);
    }

    public function POST_saveProfile()
    {
        $in = $this->params([
            'name'    => v::stringType(), // display name
            'address' => v::arrayOf([
                'city' => v::stringType(), // city
            ]),
        ]);
    }

    public function GET_apple() {
    }

    public function helper() {
    }
}
`

// parseClass writes src to a temp file and returns its first class
func parseClass(t *testing.T, src string) (*model.ClassDecl, []model.MethodDecl) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Class.php")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	file, err := phpparser.ParseFile(context.Background(), []byte(src))
	require.NoError(t, err)
	require.NotEmpty(t, file.Classes)

	cls := file.Classes[0]
	decl := &model.ClassDecl{Name: cls.FQN, File: path, Extends: cls.Extends}
	for _, m := range cls.Methods {
		decl.Methods = append(decl.Methods, model.MethodDecl{
			Name:           m.Name,
			DocComment:     m.DocComment,
			File:           path,
			StartLine:      m.BodyLine,
			EndLine:        m.EndLine,
			DeclaringClass: cls.FQN,
		})
	}
	return decl, decl.Methods
}

func TestParseMethodName(t *testing.T) {
	tests := []struct {
		name  string
		verb  model.Verb
		kebab string
		ok    bool
	}{
		{"GET_userInfo", model.VerbGET, "user-info", true},
		{"POST_saveProfile", model.VerbPOST, "save-profile", true},
		{"GET_Bar", model.VerbGET, "bar", true},
		{"GET_userInfoXML", model.VerbGET, "user-info-xml", true},
		{"GET_list_all", model.VerbGET, "list_all", true},
		{"PUT_user", "", "", false},
		{"get_user", "", "", false},
		{"xGET_user", "", "", false},
		{"GET_", "", "", false},
		{"helper", "", "", false},
	}

	for _, tt := range tests {
		verb, kebab, ok := ParseMethodName(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.verb, verb, tt.name)
		assert.Equal(t, tt.kebab, kebab, tt.name)
	}
}

func TestSortMethods(t *testing.T) {
	var records []model.MethodRecord
	for _, name := range []string{"GET_Bar", "POST_Foo", "GET_apple"} {
		verb, kebab, ok := ParseMethodName(name)
		require.True(t, ok)
		records = append(records, model.MethodRecord{Verb: verb, Name: kebab, Method: name})
	}

	SortMethods(records)

	var order []string
	for _, r := range records {
		order = append(order, r.Method)
	}
	assert.Equal(t, []string{"GET_apple", "GET_Bar", "POST_Foo"}, order)
}

func TestBuildClass(t *testing.T) {
	class, methods := parseClass(t, userAPISource)
	catalog := NewCatalog(params.NewWalker(), NewSourceCache(nil))

	records, ok, err := catalog.BuildClass(context.Background(), class, methods)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, records, 3)

	assert.Equal(t, "apple", records[0].Name)
	assert.Equal(t, "user-info", records[1].Name)
	assert.Equal(t, "save-profile", records[2].Name)

	info := records[1]
	assert.Equal(t, model.VerbGET, info.Verb)
	assert.Equal(t, "GET_userInfo", info.Method)
	assert.Contains(t, info.Description, "Returns one user.")
	assert.Equal(t, "$id = $this->param('id', v::intVal()); // user id\nreturn $this->users->find($id);\n", info.Code)
	require.Len(t, info.Parameters, 1)
	assert.Equal(t, model.ParamRecord{Key: "id", Description: "user id", Offset: 0, Line: 1}, info.Parameters[0])

	save := records[2]
	var keys []string
	for _, p := range save.Parameters {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"name", "address", "address[n]", "address[n].city"}, keys)
	assert.Equal(t, "display name", save.Parameters[0].Description)
	assert.Equal(t, 2, save.Parameters[3].Offset)

	assert.Empty(t, records[0].Description)
	assert.Empty(t, records[0].Parameters)
}

func TestBuildClassOnlyOnce(t *testing.T) {
	class, methods := parseClass(t, userAPISource)
	catalog := NewCatalog(params.NewWalker(), NewSourceCache(nil))

	first, ok, err := catalog.BuildClass(context.Background(), class, methods)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, first, 3)

	again, ok, err := catalog.BuildClass(context.Background(), class, methods)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, again)
}

func TestBuildClassMalformedDeclaration(t *testing.T) {
	src := `<?php
namespace App\Api;

class BrokenAPI
{
    public function GET_broken()
    {
        $key = 'id';
        return $this->param($key, v::intVal());
    }
}
`
	class, methods := parseClass(t, src)
	catalog := NewCatalog(params.NewWalker(), NewSourceCache(nil))

	_, _, err := catalog.BuildClass(context.Background(), class, methods)
	require.Error(t, err)

	var merr *MethodError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, `App\Api\BrokenAPI`, merr.Class)
	assert.Equal(t, "GET_broken", merr.Method)
	assert.Equal(t, 9, merr.Line)

	var derr *params.DeclarationError
	assert.True(t, errors.As(err, &derr))
	assert.Contains(t, err.Error(), "BrokenAPI::GET_broken")
}

func TestBuildClassStrictDuplicates(t *testing.T) {
	src := `<?php
class DupAPI
{
    public function POST_x()
    {
        param('a');
        param('a');
    }
}
`
	class, methods := parseClass(t, src)

	lenient := NewCatalog(params.NewWalker(), NewSourceCache(nil))
	records, _, err := lenient.BuildClass(context.Background(), class, methods)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Len(t, records[0].Parameters, 1)

	walker := params.NewWalker()
	walker.Strict = true
	strict := NewCatalog(walker, NewSourceCache(nil))
	_, _, err = strict.BuildClass(context.Background(), class, methods)

	var dup *params.DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	var merr *MethodError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, 7, merr.Line)
}
