package unpack

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

const packerBody = `eval(function(p,a,c,k,e,d){e=function(c){return(c<a?'':e(parseInt(c/a)))+((c=c%a)>35?String.fromCharCode(c+29):c.toString(36))};if(!''.replace(/^/,String)){while(c--){d[e(c)]=k[c]||e(c)}k=[function(e){return d[e]}];e=function(){return'\\w+'};c=1};while(c--){if(k[c]){p=p.replace(new RegExp('\\b'+e(c)+'\\b','g'),k[c])}}return p}`

func packScript(payload string, radix, count int, symbols ...string) string {
	return fmt.Sprintf(`%s('%s',%d,%d,'%s'.split('|'),0,{}))`, packerBody, payload, radix, count, strings.Join(symbols, "|"))
}

var streamSymbols = []string{"var", "file", "https", "cdn", "example", "com", "master", "m3u8"}

const streamPayload = `0 1="2://3.4.5/6.7"`

func TestDetect(t *testing.T) {
	Convey("Detect", t, func() {
		So(Detect(packScript(streamPayload, 62, 8, streamSymbols...)), ShouldBeTrue)
		So(Detect("eval(function(p,a,c,k,e,r){return p}('',0,0,''.split('|')))"), ShouldBeTrue)
		So(Detect("eval( function ( p , a , c , k , e ) {}"), ShouldBeTrue)
		So(Detect(`jwplayer("vplayer").setup({sources: [{file:"a.m3u8"}]})`), ShouldBeFalse)
	})
}

func TestUnpack(t *testing.T) {
	Convey("Given a packed player script", t, func() {
		script := `<script>` + packScript(streamPayload, 62, 8, streamSymbols...) + `</script>`

		Convey("Unpack should restore the source", func() {
			out, err := Unpack(script)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, `var file="https://cdn.example.com/master.m3u8"`)
		})
	})

	Convey("Given tokens above 9 in radix 62", t, func() {
		symbols := make([]string, 37)
		for i := range symbols {
			symbols[i] = fmt.Sprintf("s%d", i)
		}

		out, err := Unpack(packScript("a A 9", 62, len(symbols), symbols...))
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "s10 s36 s9")
	})

	Convey("Given radix 10", t, func() {
		symbols := make([]string, 12)
		for i := range symbols {
			symbols[i] = fmt.Sprintf("w%d", i)
		}

		out, err := Unpack(packScript("11 a", 10, len(symbols), symbols...))
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "w11 a")
	})

	Convey("Given an empty symbol", t, func() {
		out, err := Unpack(packScript("0 1 2", 62, 3, "var", "", "x"))
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "var 1 x")
	})

	Convey("Given escaped quotes in the payload", t, func() {
		out, err := Unpack(packScript(`0(\'1\')`, 62, 2, "alert", "hi"))
		So(err, ShouldBeNil)
		So(out, ShouldEqual, `alert('hi')`)
	})

	Convey("Given radix 95", t, func() {
		symbols := make([]string, 95)
		for i := range symbols {
			symbols[i] = fmt.Sprintf("s%d", i)
		}

		out, err := Unpack(packScript("a A 0 10", 95, len(symbols), symbols...))
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "s65 s33 s16 10")
	})

	Convey("Given escaped backslashes in the payload", t, func() {
		out, err := Unpack(packScript(`0("a\\\\b\\\'c")`, 62, 1, "log"))
		So(err, ShouldBeNil)
		So(out, ShouldEqual, `log("a\\b\'c")`)
	})

	Convey("Given words too long to index any symbol", t, func() {
		script := packScript(`0 1="2://3.4.5/6.7?t=bbbbbbbbbbb&u=zzzzzzzzzzzzzzzzzzzzzzzz"`, 62, 8, streamSymbols...)

		So(func() { _, _ = Unpack(script) }, ShouldNotPanic)
		out, err := Unpack(script)
		So(err, ShouldBeNil)
		So(out, ShouldEqual, `var file="https://cdn.example.com/master.m3u8?t=bbbbbbbbbbb&u=zzzzzzzzzzzzzzzzzzzzzzzz"`)
	})

	Convey("Given a plain script", t, func() {
		_, err := Unpack("var a = 1;")
		So(err, ShouldEqual, ErrNotPacked)
	})

	Convey("Given a count that disagrees with the symbols", t, func() {
		_, err := Unpack(packScript(streamPayload, 62, 9, streamSymbols...))
		So(errors.Is(err, ErrMalformed), ShouldBeTrue)
	})

	Convey("Given a truncated tail", t, func() {
		_, err := Unpack(packerBody + `('0 1',62,`)
		So(errors.Is(err, ErrMalformed), ShouldBeTrue)
	})

	Convey("Given an unsupported radix", t, func() {
		_, err := Unpack(packScript("0", 200, 1, "x"))
		So(errors.Is(err, ErrMalformed), ShouldBeTrue)
	})
}

func TestUnpackAll(t *testing.T) {
	Convey("Given two packed blocks", t, func() {
		script := packScript("0", 62, 1, "first") + ";\n" + packScript("0 1", 62, 2, "second", "block")

		out, err := UnpackAll(script)
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "first second block")
	})

	Convey("Given no packed block", t, func() {
		_, err := UnpackAll("console.log(1)")
		So(err, ShouldEqual, ErrNotPacked)
	})
}

func TestDecode(t *testing.T) {
	Convey("Given a good block followed by one the decoder rejects", t, func() {
		script := packScript("0", 62, 1, "first") + ";\n" + packScript("0 1", 62, 3, "sources", "block")

		Convey("UnpackAll fails as a whole", func() {
			_, err := UnpackAll(script)
			So(errors.Is(err, ErrMalformed), ShouldBeTrue)
		})

		Convey("Decode evaluates only the rejected block", func() {
			out, err := Decode(script)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "first sources block")
		})

		Convey("Auto keeps both blocks", func() {
			So(Auto(script), ShouldEqual, "first sources block")
		})
	})

	Convey("Given no packed block", t, func() {
		_, err := Decode("console.log(1)")
		So(err, ShouldEqual, ErrNotPacked)
	})
}

func TestUnbaser(t *testing.T) {
	Convey("decode stops at the symbol count", t, func() {
		base := lo.Must(newUnbaser(62))

		n, ok := base.decode("10", 100)
		So(ok, ShouldBeTrue)
		So(n, ShouldEqual, 62)

		_, ok = base.decode("bbbbbbbbbbbbbbbbbbbbbbbb", 100)
		So(ok, ShouldBeFalse)

		_, ok = lo.Must(newUnbaser(36)).decode("zzzzzzzzzzzzzzzzzzzzzzzz", 100)
		So(ok, ShouldBeFalse)
	})
}

func TestEval(t *testing.T) {
	Convey("Given a runnable packed block", t, func() {
		out, err := Eval(packScript(streamPayload, 62, 8, streamSymbols...))
		So(err, ShouldBeNil)
		So(out, ShouldEqual, `var file="https://cdn.example.com/master.m3u8"`)
	})

	Convey("Given trailing code that needs a browser", t, func() {
		script := packScript(streamPayload, 62, 8, streamSymbols...) + `;jwplayer("vplayer").setup({});`
		out, err := Eval(script)
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "master.m3u8")
	})

	Convey("Given no header", t, func() {
		_, err := Eval("1+1")
		So(err, ShouldEqual, ErrNotPacked)
	})
}

func TestAuto(t *testing.T) {
	Convey("Auto", t, func() {
		Convey("Plain scripts pass through", func() {
			So(Auto("var a = 1;"), ShouldEqual, "var a = 1;")
		})

		Convey("Packed scripts are decoded", func() {
			So(Auto(packScript(streamPayload, 62, 8, streamSymbols...)), ShouldEqual, `var file="https://cdn.example.com/master.m3u8"`)
		})

		Convey("Scripts the decoder rejects fall back to evaluation", func() {
			So(Auto(packScript(streamPayload, 62, 9, streamSymbols...)), ShouldEqual, `var file="https://cdn.example.com/master.m3u8"`)
		})
	})
}
